package database

import (
	"context"
	"strings"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
)

type repoStore struct{}

var _ store.RepositoryStore = (*repoStore)(nil)

const selectRepos = `SELECT repos.*, users.email AS owner_email
		FROM repos
		INNER JOIN users ON users.id = repos.user_id`

// CreateRepo implements store.RepositoryStore.
func (*repoStore) CreateRepo(ctx context.Context, tx db.Handler, name string, userID int64) (int64, error) {
	query := tx.Rebind(`INSERT INTO repos (name, user_id, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	err := tx.GetContext(ctx, &id, query, strings.TrimSpace(name), userID)
	return id, db.WrapError(err)
}

// GetRepoByID implements store.RepositoryStore.
func (*repoStore) GetRepoByID(ctx context.Context, tx db.Handler, id int64) (models.Repo, error) {
	var repo models.Repo
	query := tx.Rebind(selectRepos + ` WHERE repos.id = ?;`)
	err := tx.GetContext(ctx, &repo, query, id)
	return repo, db.WrapError(err)
}

// GetAllRepos implements store.RepositoryStore.
func (*repoStore) GetAllRepos(ctx context.Context, tx db.Handler) ([]models.Repo, error) {
	var repos []models.Repo
	query := tx.Rebind(selectRepos + ` ORDER BY repos.id;`)
	err := tx.SelectContext(ctx, &repos, query)
	return repos, db.WrapError(err)
}

// GetCollabRepos implements store.RepositoryStore.
func (*repoStore) GetCollabRepos(ctx context.Context, tx db.Handler, userID int64) ([]models.Repo, error) {
	var repos []models.Repo
	query := tx.Rebind(selectRepos + `
		INNER JOIN collabs ON collabs.repo_id = repos.id
		WHERE collabs.user_id = ?
		ORDER BY repos.id;`)
	err := tx.SelectContext(ctx, &repos, query, userID)
	return repos, db.WrapError(err)
}
