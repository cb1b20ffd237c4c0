package proto

import (
	"errors"
)

// Error kinds. Every error returned by the backend unwraps to one of these.
var (
	// ErrNotFound is the kind of errors for absent repositories, users,
	// files, versions and blobs.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is the kind of errors for insufficient roles.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidInput is the kind of errors for rejected request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is the kind of errors for requests clashing with
	// existing state.
	ErrConflict = errors.New("conflict")
	// ErrStorageFailure is the kind of errors for disk I/O failures.
	ErrStorageFailure = errors.New("storage failure")
	// ErrIntegrityFailure is the kind of errors for ledger rows without a
	// blob, or blobs without a ledger row.
	ErrIntegrityFailure = errors.New("integrity failure")
)

// kindError is a message bound to an error kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	// ErrUnauthorized is returned when the user is not authorized to perform action.
	ErrUnauthorized = newError(ErrPermissionDenied, "permission denied")
	// ErrWriteRequired is returned when a read-only collaborator tries to write.
	ErrWriteRequired = newError(ErrPermissionDenied, "write permission required")
	// ErrAdminRequired is returned when a non-admin collaborator tries an admin operation.
	ErrAdminRequired = newError(ErrPermissionDenied, "admin permission required")
	// ErrInactiveUser is returned when a deactivated user authenticates.
	ErrInactiveUser = newError(ErrPermissionDenied, "user is inactive")

	// ErrRepoNotFound is returned when a repository is not found.
	ErrRepoNotFound = newError(ErrNotFound, "repository not found")
	// ErrFileNotFound is returned when the file is not found.
	ErrFileNotFound = newError(ErrNotFound, "file not found")
	// ErrVersionNotFound is returned when a file version is not found.
	ErrVersionNotFound = newError(ErrNotFound, "version not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = newError(ErrNotFound, "user not found")
	// ErrBlobNotFound is returned when a version exists in the ledger but
	// its blob is missing on disk.
	ErrBlobNotFound = newError(ErrIntegrityFailure, "versioned file not found")

	// ErrInvalidFilename is returned when a filename is empty after sanitization.
	ErrInvalidFilename = newError(ErrInvalidInput, "invalid filename")
	// ErrPathEscape is returned when a path resolves outside its repository root.
	ErrPathEscape = newError(ErrInvalidInput, "invalid path")
	// ErrEmptyFile is returned when an upload has no content.
	ErrEmptyFile = newError(ErrInvalidInput, "empty file not allowed")
	// ErrInvalidVersion is returned when an explicit version number is not
	// positive or not greater than the latest version.
	ErrInvalidVersion = newError(ErrInvalidInput, "invalid version number")
	// ErrInvalidRepoName is returned when a repository name is blank.
	ErrInvalidRepoName = newError(ErrInvalidInput, "invalid repository name")
	// ErrRepoExist is returned when a repository already exists.
	ErrRepoExist = newError(ErrInvalidInput, "repository with this name already exists")
	// ErrUserExist is returned when an email is already registered.
	ErrUserExist = newError(ErrInvalidInput, "email already registered")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = newError(ErrInvalidInput, "invalid credentials")
	// ErrCollaboratorExist is returned when a user is already a collaborator.
	ErrCollaboratorExist = newError(ErrInvalidInput, "user is already a collaborator")
	// ErrSelfCollaborator is returned when a user invites themselves.
	ErrSelfCollaborator = newError(ErrInvalidInput, "you are already a collaborator (owner)")

	// ErrDuplicateContent is returned when an upload matches the latest version.
	ErrDuplicateContent = newError(ErrConflict, "identical file already uploaded as latest version")
)

// Kind returns the error kind err belongs to, or nil when err is not a
// classified error.
func Kind(err error) error {
	for _, k := range []error{
		ErrNotFound,
		ErrPermissionDenied,
		ErrInvalidInput,
		ErrConflict,
		ErrIntegrityFailure,
		ErrStorageFailure,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
