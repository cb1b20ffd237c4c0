package proto

// User is an interface representing a user.
type User interface {
	// ID returns the user's ID.
	ID() int64
	// Email returns the user's email address.
	Email() string
	// FullName returns the user's display name.
	FullName() string
	// IsActive returns whether the user may authenticate.
	IsActive() bool
	// Password returns the user's password hash.
	Password() string
}

// UserOptions are options for creating a user.
type UserOptions struct {
	// FullName is the user's display name.
	FullName string
	// Password is the plain text password. It is hashed before storage.
	Password string
}
