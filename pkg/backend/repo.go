package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

// CreateRepository creates a new repository owned by user. The owner is
// recorded as an admin collaborator in the same transaction.
func (d *Backend) CreateRepository(ctx context.Context, name string, user proto.User) (proto.Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, proto.ErrInvalidRepoName
	}
	if user == nil {
		return nil, proto.ErrUnauthorized
	}

	var id int64
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		id, err = d.store.CreateRepo(ctx, tx, name, user.ID())
		if err != nil {
			return err
		}

		return d.store.AddCollab(ctx, tx, id, user.ID(), access.AdminAccess)
	}); err != nil {
		d.logger.Debug("failed to create repository in database", "err", err)
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, proto.ErrRepoExist
		}

		return nil, err
	}

	d.logger.Info("repository created", "id", id, "name", name, "owner", user.Email())
	return d.Repository(ctx, id)
}

// Repository returns a repository by id.
func (d *Backend) Repository(ctx context.Context, id int64) (proto.Repository, error) {
	if r, ok := d.cache.Get(id); ok && r != nil {
		return r, nil
	}

	m, err := d.store.GetRepoByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrRepoNotFound
		}
		d.logger.Error("error finding repository", "id", id, "error", err)
		return nil, err
	}

	r := &repo{repo: m}
	d.cache.Set(id, r)

	return r, nil
}

// Repositories returns all repositories.
func (d *Backend) Repositories(ctx context.Context) ([]proto.Repository, error) {
	ms, err := d.store.GetAllRepos(ctx, d.db)
	if err != nil {
		return nil, err
	}

	return d.toRepos(ms), nil
}

// UserRepositories returns the repositories user collaborates on.
func (d *Backend) UserRepositories(ctx context.Context, user proto.User) ([]proto.Repository, error) {
	if user == nil {
		return nil, proto.ErrUnauthorized
	}

	ms, err := d.store.GetCollabRepos(ctx, d.db, user.ID())
	if err != nil {
		return nil, err
	}

	return d.toRepos(ms), nil
}

func (d *Backend) toRepos(ms []models.Repo) []proto.Repository {
	repos := make([]proto.Repository, 0, len(ms))
	for _, m := range ms {
		r := &repo{repo: m}
		d.cache.Set(m.ID, r)
		repos = append(repos, r)
	}
	return repos
}

type repo struct {
	repo models.Repo
}

var _ proto.Repository = (*repo)(nil)

// ID implements proto.Repository.
func (r *repo) ID() int64 {
	return r.repo.ID
}

// Name implements proto.Repository.
func (r *repo) Name() string {
	return r.repo.Name
}

// UserID implements proto.Repository.
func (r *repo) UserID() int64 {
	return r.repo.UserID
}

// OwnerEmail implements proto.Repository.
func (r *repo) OwnerEmail() string {
	return r.repo.OwnerEmail
}

// CreatedAt implements proto.Repository.
func (r *repo) CreatedAt() time.Time {
	return r.repo.CreatedAt
}

// UpdatedAt implements proto.Repository.
func (r *repo) UpdatedAt() time.Time {
	return r.repo.UpdatedAt
}
