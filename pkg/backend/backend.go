package backend

import (
	"context"

	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/storage"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
	"github.com/charmbracelet/log"
)

// Backend is the TicsLab backend that handles users, repositories,
// collaborators, and versioned file operations.
type Backend struct {
	ctx     context.Context
	cfg     *config.Config
	db      *db.DB
	store   store.Store
	storage storage.Storage
	logger  *log.Logger
	cache   *cache
}

// New returns a new TicsLab backend. Blobs are kept under
// cfg.Storage.Path.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:     ctx,
		cfg:     cfg,
		db:      db,
		store:   st,
		storage: storage.NewLocalStorage(cfg.Storage.Path),
		logger:  logger,
	}

	b.cache = newCache(b, 1000)

	return b
}

// Ping checks that the ledger database is reachable.
func (d *Backend) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}
