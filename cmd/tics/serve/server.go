package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/stats"
	"github.com/Hafiz-shamnad/TicsLab/pkg/web"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Server runs the API and, when enabled, the metrics listener.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server.
// It expects a context with *backend.Backend, *db.DB, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	srv := &Server{
		Config:  cfg,
		Backend: backend.FromContext(ctx),
		DB:      db.FromContext(ctx),
		logger:  log.FromContext(ctx).WithPrefix("server"),
		ctx:     ctx,
	}

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	if cfg.Stats.Enabled {
		srv.StatsServer, err = stats.NewStatsServer(ctx)
		if err != nil {
			return nil, fmt.Errorf("create stats server: %w", err)
		}
	}

	return srv, nil
}

// Start starts the listeners and blocks until they stop. A listener that
// fails closes the others.
func (s *Server) Start() error {
	var errg errgroup.Group

	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
		return s.serve(s.HTTPServer.ListenAndServe)
	})

	if s.StatsServer != nil {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			return s.serve(s.StatsServer.ListenAndServe)
		})
	}

	return errg.Wait()
}

func (s *Server) serve(listen func() error) error {
	if err := listen(); !errors.Is(err, http.ErrServerClosed) {
		if cerr := s.Close(); cerr != nil {
			s.logger.Error("failed to close server", "err", cerr)
		}
		return err
	}
	return nil
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	if s.StatsServer != nil {
		errg.Go(func() error {
			return s.StatsServer.Shutdown(ctx)
		})
	}
	return errg.Wait()
}

// Close closes the listeners immediately.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	if s.StatsServer != nil {
		errg.Go(s.StatsServer.Close)
	}
	return errg.Wait()
}
