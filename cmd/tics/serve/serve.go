package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hafiz-shamnad/TicsLab/cmd"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/migrate"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:                "serve",
	Short:              "Start the server",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)
		if cfg.Auth.JWTSecret == "" {
			return config.ErrMissingJWTSecret
		}

		if err := os.MkdirAll(cfg.Storage.Path, 0o750); err != nil {
			return fmt.Errorf("create storage directory: %w", err)
		}

		db := db.FromContext(ctx)
		if err := migrate.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		sigctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		lch := make(chan error, 1)
		go func() {
			lch <- s.Start()
		}()

		select {
		case err := <-lch:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-sigctx.Done():
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	},
}
