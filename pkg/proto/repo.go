package proto

import (
	"time"
)

// Repository is a file repository.
type Repository interface {
	// ID returns the repository's ID.
	ID() int64
	// Name returns the repository's name.
	Name() string
	// UserID returns the ID of the user who owns the repository.
	UserID() int64
	// OwnerEmail returns the email of the user who owns the repository.
	OwnerEmail() string
	// CreatedAt returns the time the repository was created.
	CreatedAt() time.Time
	// UpdatedAt returns the time the repository was last updated.
	UpdatedAt() time.Time
}
