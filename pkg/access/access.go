// Package access defines the collaborator roles of a repository.
package access

import (
	"encoding"
	"errors"
)

// AccessLevel is the role a collaborator holds on a repository.
type AccessLevel int // nolint: revive

const (
	// NoAccess means the user is not a collaborator.
	NoAccess AccessLevel = iota

	// ReadAccess allows listing and downloading files.
	ReadAccess

	// WriteAccess allows uploading new versions.
	WriteAccess

	// AdminAccess allows deleting versions and managing collaborators.
	AdminAccess
)

// String returns the string representation of the access level.
func (a AccessLevel) String() string {
	switch a {
	case NoAccess:
		return "no-access"
	case ReadAccess:
		return "read"
	case WriteAccess:
		return "write"
	case AdminAccess:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseAccessLevel parses an access level string.
func ParseAccessLevel(s string) AccessLevel {
	switch s {
	case "no-access":
		return NoAccess
	case "read":
		return ReadAccess
	case "write":
		return WriteAccess
	case "admin":
		return AdminAccess
	default:
		return AccessLevel(-1)
	}
}

// IsRole reports whether a is one of the grantable collaborator roles.
func (a AccessLevel) IsRole() bool {
	return a >= ReadAccess && a <= AdminAccess
}

// Allows reports whether a collaborator holding a satisfies required.
// Write is satisfied by write and admin, admin only by admin, and read by
// any role. NoAccess never satisfies anything.
func (a AccessLevel) Allows(required AccessLevel) bool {
	if !a.IsRole() {
		return false
	}
	return a >= required
}

var (
	_ encoding.TextMarshaler   = AccessLevel(0)
	_ encoding.TextUnmarshaler = (*AccessLevel)(nil)
)

// ErrInvalidAccessLevel is returned when an invalid access level is provided.
var ErrInvalidAccessLevel = errors.New("invalid access level")

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccessLevel) UnmarshalText(text []byte) error {
	l := ParseAccessLevel(string(text))
	if l < 0 {
		return ErrInvalidAccessLevel
	}

	*a = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a AccessLevel) MarshalText() (text []byte, err error) {
	return []byte(a.String()), nil
}
