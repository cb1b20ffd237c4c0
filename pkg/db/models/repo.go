package models

import (
	"time"
)

// Repo is a database model for a repository.
type Repo struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// OwnerEmail is filled by queries joining the owner.
	OwnerEmail string `db:"owner_email"`
}
