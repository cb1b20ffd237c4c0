package models

import (
	"database/sql"
	"time"
)

// File is a versioned file of a repository. LatestDigest and
// LatestUploadedAt mirror the surviving version with the highest number.
// LastVersion is the highest number ever assigned and never decreases.
type File struct {
	ID               int64     `db:"id"`
	RepoID           int64     `db:"repo_id"`
	Filename         string    `db:"filename"`
	LatestDigest     string    `db:"latest_digest"`
	LastVersion      int64     `db:"last_version"`
	LatestUploadedAt time.Time `db:"latest_uploaded_at"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// FileSummary is a file row aggregated over its versions.
type FileSummary struct {
	Filename         string    `db:"filename"`
	LatestDigest     string    `db:"latest_digest"`
	LatestUploadedAt time.Time `db:"latest_uploaded_at"`
	VersionCount     int64     `db:"version_count"`
	MaxVersion       int64     `db:"max_version"`
}

// FileVersion is a single immutable version of a file.
type FileVersion struct {
	ID          int64          `db:"id"`
	FileID      int64          `db:"file_id"`
	Version     int64          `db:"version_number"`
	Digest      string         `db:"digest"`
	Size        int64          `db:"size"`
	Description sql.NullString `db:"description"`
	UploaderID  sql.NullInt64  `db:"uploader_id"`
	UploadedAt  time.Time      `db:"uploaded_at"`
}

// LedgerEntry is a version joined with its file and repository.
type LedgerEntry struct {
	RepoID   int64  `db:"repo_id"`
	Filename string `db:"filename"`
	Version  int64  `db:"version_number"`
	Digest   string `db:"digest"`
	Size     int64  `db:"size"`
}
