package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/samber/lo"
)

// AddCollaborator grants the user with the given email a role on a
// repository. The acting user must be an admin of the repository.
func (d *Backend) AddCollaborator(ctx context.Context, repoID int64, actor proto.User, email string, level access.AccessLevel) (proto.Collaborator, error) {
	if !level.IsRole() {
		return proto.Collaborator{}, fmt.Errorf("%w: %w", proto.ErrInvalidInput, access.ErrInvalidAccessLevel)
	}

	if _, err := d.Authorize(ctx, repoID, actor, access.AdminAccess); err != nil {
		if errors.Is(err, proto.ErrPermissionDenied) {
			return proto.Collaborator{}, proto.ErrAdminRequired
		}
		return proto.Collaborator{}, err
	}

	target, err := d.User(ctx, strings.TrimSpace(email))
	if err != nil {
		return proto.Collaborator{}, err
	}

	if target.ID() == actor.ID() {
		return proto.Collaborator{}, proto.ErrSelfCollaborator
	}

	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return d.store.AddCollab(ctx, tx, repoID, target.ID(), level)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.Collaborator{}, proto.ErrCollaboratorExist
		}
		return proto.Collaborator{}, err
	}

	d.logger.Info("collaborator added", "repo", repoID, "user", target.Email(), "role", level)
	return proto.Collaborator{
		UserID:      target.ID(),
		Email:       target.Email(),
		AccessLevel: level,
	}, nil
}

// Collaborators returns the collaborators of a repository.
func (d *Backend) Collaborators(ctx context.Context, repoID int64) ([]proto.Collaborator, error) {
	ms, err := d.store.ListCollabsByRepo(ctx, d.db, repoID)
	if err != nil {
		return nil, err
	}

	return lo.Map(ms, toCollaborator), nil
}

// CollaboratorsByRepo returns the collaborators of several repositories
// keyed by repository id.
func (d *Backend) CollaboratorsByRepo(ctx context.Context, repoIDs []int64) (map[int64][]proto.Collaborator, error) {
	ms, err := d.store.ListCollabsByRepos(ctx, d.db, repoIDs)
	if err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(ms, func(m models.CollabUser) int64 { return m.RepoID })
	return lo.MapValues(grouped, func(ms []models.CollabUser, _ int64) []proto.Collaborator {
		return lo.Map(ms, toCollaborator)
	}), nil
}

func toCollaborator(m models.CollabUser, _ int) proto.Collaborator {
	return proto.Collaborator{
		UserID:      m.UserID,
		Email:       m.Email,
		AccessLevel: m.AccessLevel,
	}
}
