package store

import (
	"context"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
)

// CollaboratorStore is an interface for managing collaborators.
type CollaboratorStore interface {
	GetCollabAccessLevel(ctx context.Context, h db.Handler, repoID int64, userID int64) (access.AccessLevel, error)
	AddCollab(ctx context.Context, h db.Handler, repoID int64, userID int64, level access.AccessLevel) error
	ListCollabsByRepo(ctx context.Context, h db.Handler, repoID int64) ([]models.CollabUser, error)
	ListCollabsByRepos(ctx context.Context, h db.Handler, repoIDs []int64) ([]models.CollabUser, error)
}
