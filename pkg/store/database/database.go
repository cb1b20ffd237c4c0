package database

import (
	"context"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
	"github.com/charmbracelet/log"
)

type datastore struct {
	ctx    context.Context
	db     *db.DB
	logger *log.Logger

	*repoStore
	*userStore
	*collabStore
	*fileStore
}

var _ store.Store = (*datastore)(nil)

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		db:     db,
		logger: logger,

		repoStore:   &repoStore{},
		userStore:   &userStore{},
		collabStore: &collabStore{},
		fileStore:   &fileStore{},
	}

	return s
}
