package database

import (
	"context"
	"strings"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, tx db.Handler, email string, fullName string, password string) (int64, error) {
	query := tx.Rebind(`INSERT INTO users (email, full_name, password, is_active, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	err := tx.GetContext(ctx, &id, query, strings.TrimSpace(email), fullName, password, true)
	return id, db.WrapError(err)
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, tx db.Handler, id int64) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, db.WrapError(err)
}

// FindUserByEmail implements store.UserStore. Emails match
// case-insensitively.
func (*userStore) FindUserByEmail(ctx context.Context, tx db.Handler, email string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE LOWER(email) = LOWER(?);`)
	err := tx.GetContext(ctx, &m, query, strings.TrimSpace(email))
	return m, db.WrapError(err)
}

// GetAllUsers implements store.UserStore.
func (*userStore) GetAllUsers(ctx context.Context, tx db.Handler) ([]models.User, error) {
	var ms []models.User
	query := tx.Rebind(`SELECT * FROM users ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query)
	return ms, db.WrapError(err)
}

// SetUserActiveByEmail implements store.UserStore.
func (*userStore) SetUserActiveByEmail(ctx context.Context, tx db.Handler, email string, active bool) error {
	query := tx.Rebind(`UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP
			WHERE LOWER(email) = LOWER(?) RETURNING id;`)
	var id int64
	err := tx.GetContext(ctx, &id, query, active, strings.TrimSpace(email))
	return db.WrapError(err)
}
