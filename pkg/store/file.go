package store

import (
	"context"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
)

// FileStore is the version ledger. Mutations must run inside a transaction
// that first locks the file row with UpsertFile or LockFile.
type FileStore interface {
	// UpsertFile creates the file row if needed and returns it. The row
	// stays locked until the transaction ends.
	UpsertFile(ctx context.Context, h db.Handler, repoID int64, filename string) (models.File, error)
	// LockFile locks an existing file row and returns it.
	LockFile(ctx context.Context, h db.Handler, repoID int64, filename string) (models.File, error)
	GetFile(ctx context.Context, h db.Handler, repoID int64, filename string) (models.File, error)
	ListFileSummaries(ctx context.Context, h db.Handler, repoID int64) ([]models.FileSummary, error)
	DeleteFile(ctx context.Context, h db.Handler, fileID int64) error
	// RefreshFileLatest copies the highest version into the file row's
	// latest columns.
	RefreshFileLatest(ctx context.Context, h db.Handler, fileID int64) error
	// SetFileLastVersion raises the file's high-water version mark.
	SetFileLastVersion(ctx context.Context, h db.Handler, fileID int64, version int64) error

	CreateVersion(ctx context.Context, h db.Handler, v models.FileVersion) error
	GetVersion(ctx context.Context, h db.Handler, fileID int64, version int64) (models.FileVersion, error)
	GetLatestVersion(ctx context.Context, h db.Handler, fileID int64) (models.FileVersion, error)
	ListVersions(ctx context.Context, h db.Handler, fileID int64) ([]models.FileVersion, error)
	CountVersions(ctx context.Context, h db.Handler, fileID int64) (int64, error)
	DeleteVersion(ctx context.Context, h db.Handler, fileID int64, version int64) error
	// ListLedgerEntries lists every version of a repository, or of all
	// repositories when repoID is zero.
	ListLedgerEntries(ctx context.Context, h db.Handler, repoID int64) ([]models.LedgerEntry, error)
}
