package database

import (
	"context"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
	"github.com/jmoiron/sqlx"
)

type collabStore struct{}

var _ store.CollaboratorStore = (*collabStore)(nil)

// AddCollab implements store.CollaboratorStore.
func (*collabStore) AddCollab(ctx context.Context, tx db.Handler, repoID int64, userID int64, level access.AccessLevel) error {
	query := tx.Rebind(`INSERT INTO collabs (repo_id, user_id, access_level, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query, repoID, userID, level)
	return db.WrapError(err)
}

// GetCollabAccessLevel implements store.CollaboratorStore. It uses the
// (repo_id, user_id) unique index.
func (*collabStore) GetCollabAccessLevel(ctx context.Context, tx db.Handler, repoID int64, userID int64) (access.AccessLevel, error) {
	var level access.AccessLevel
	query := tx.Rebind(`SELECT access_level FROM collabs WHERE repo_id = ? AND user_id = ?;`)
	if err := tx.GetContext(ctx, &level, query, repoID, userID); err != nil {
		return access.NoAccess, db.WrapError(err)
	}
	return level, nil
}

const selectCollabUsers = `SELECT
			collabs.repo_id,
			collabs.user_id,
			users.email,
			collabs.access_level
		FROM
			collabs
		INNER JOIN users ON users.id = collabs.user_id`

// ListCollabsByRepo implements store.CollaboratorStore.
func (*collabStore) ListCollabsByRepo(ctx context.Context, tx db.Handler, repoID int64) ([]models.CollabUser, error) {
	var m []models.CollabUser
	query := tx.Rebind(selectCollabUsers + `
		WHERE collabs.repo_id = ?
		ORDER BY collabs.id;`)
	err := tx.SelectContext(ctx, &m, query, repoID)
	return m, db.WrapError(err)
}

// ListCollabsByRepos implements store.CollaboratorStore.
func (*collabStore) ListCollabsByRepos(ctx context.Context, tx db.Handler, repoIDs []int64) ([]models.CollabUser, error) {
	var m []models.CollabUser
	if len(repoIDs) == 0 {
		return m, nil
	}

	query, args, err := sqlx.In(selectCollabUsers+`
		WHERE collabs.repo_id IN (?)
		ORDER BY collabs.repo_id, collabs.id;`, repoIDs)
	if err != nil {
		return nil, db.WrapError(err)
	}

	query = tx.Rebind(query)
	err = tx.SelectContext(ctx, &m, query, args...)
	return m, db.WrapError(err)
}
