package database

import (
	"context"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
)

type fileStore struct{}

var _ store.FileStore = (*fileStore)(nil)

// UpsertFile implements store.FileStore.
func (f *fileStore) UpsertFile(ctx context.Context, tx db.Handler, repoID int64, filename string) (models.File, error) {
	query := tx.Rebind(`INSERT INTO files (repo_id, filename, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (repo_id, filename) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
			RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, repoID, filename); err != nil {
		return models.File{}, db.WrapError(err)
	}

	return f.getFileByID(ctx, tx, id)
}

// LockFile implements store.FileStore.
func (f *fileStore) LockFile(ctx context.Context, tx db.Handler, repoID int64, filename string) (models.File, error) {
	query := tx.Rebind(`UPDATE files SET updated_at = CURRENT_TIMESTAMP
			WHERE repo_id = ? AND filename = ?
			RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, repoID, filename); err != nil {
		return models.File{}, db.WrapError(err)
	}

	return f.getFileByID(ctx, tx, id)
}

func (*fileStore) getFileByID(ctx context.Context, tx db.Handler, id int64) (models.File, error) {
	var m models.File
	query := tx.Rebind(`SELECT * FROM files WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, db.WrapError(err)
}

// GetFile implements store.FileStore.
func (*fileStore) GetFile(ctx context.Context, tx db.Handler, repoID int64, filename string) (models.File, error) {
	var m models.File
	query := tx.Rebind(`SELECT * FROM files WHERE repo_id = ? AND filename = ?;`)
	err := tx.GetContext(ctx, &m, query, repoID, filename)
	return m, db.WrapError(err)
}

// ListFileSummaries implements store.FileStore.
func (*fileStore) ListFileSummaries(ctx context.Context, tx db.Handler, repoID int64) ([]models.FileSummary, error) {
	var ms []models.FileSummary
	query := tx.Rebind(`SELECT
			files.filename,
			files.latest_digest,
			files.latest_uploaded_at,
			COUNT(file_versions.id) AS version_count,
			MAX(file_versions.version_number) AS max_version
		FROM
			files
		INNER JOIN file_versions ON file_versions.file_id = files.id
		WHERE
			files.repo_id = ?
		GROUP BY
			files.id, files.filename, files.latest_digest, files.latest_uploaded_at
		ORDER BY
			files.filename;`)
	err := tx.SelectContext(ctx, &ms, query, repoID)
	return ms, db.WrapError(err)
}

// DeleteFile implements store.FileStore.
func (*fileStore) DeleteFile(ctx context.Context, tx db.Handler, fileID int64) error {
	query := tx.Rebind(`DELETE FROM files WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, fileID)
	return db.WrapError(err)
}

// RefreshFileLatest implements store.FileStore.
func (*fileStore) RefreshFileLatest(ctx context.Context, tx db.Handler, fileID int64) error {
	query := tx.Rebind(`UPDATE files SET
			latest_digest = (
				SELECT digest FROM file_versions
				WHERE file_id = ?
				ORDER BY version_number DESC LIMIT 1
			),
			latest_uploaded_at = (
				SELECT uploaded_at FROM file_versions
				WHERE file_id = ?
				ORDER BY version_number DESC LIMIT 1
			),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, fileID, fileID, fileID)
	return db.WrapError(err)
}

// SetFileLastVersion implements store.FileStore.
func (*fileStore) SetFileLastVersion(ctx context.Context, tx db.Handler, fileID int64, version int64) error {
	query := tx.Rebind(`UPDATE files SET last_version = ?
			WHERE id = ? AND last_version < ?;`)
	_, err := tx.ExecContext(ctx, query, version, fileID, version)
	return db.WrapError(err)
}

// CreateVersion implements store.FileStore.
func (*fileStore) CreateVersion(ctx context.Context, tx db.Handler, v models.FileVersion) error {
	query := tx.Rebind(`INSERT INTO file_versions (file_id, version_number, digest, size, description, uploader_id)
			VALUES (?, ?, ?, ?, ?, ?);`)
	_, err := tx.ExecContext(ctx, query, v.FileID, v.Version, v.Digest, v.Size, v.Description, v.UploaderID)
	return db.WrapError(err)
}

// GetVersion implements store.FileStore.
func (*fileStore) GetVersion(ctx context.Context, tx db.Handler, fileID int64, version int64) (models.FileVersion, error) {
	var m models.FileVersion
	query := tx.Rebind(`SELECT * FROM file_versions WHERE file_id = ? AND version_number = ?;`)
	err := tx.GetContext(ctx, &m, query, fileID, version)
	return m, db.WrapError(err)
}

// GetLatestVersion implements store.FileStore.
func (*fileStore) GetLatestVersion(ctx context.Context, tx db.Handler, fileID int64) (models.FileVersion, error) {
	var m models.FileVersion
	query := tx.Rebind(`SELECT * FROM file_versions WHERE file_id = ?
			ORDER BY version_number DESC LIMIT 1;`)
	err := tx.GetContext(ctx, &m, query, fileID)
	return m, db.WrapError(err)
}

// ListVersions implements store.FileStore.
func (*fileStore) ListVersions(ctx context.Context, tx db.Handler, fileID int64) ([]models.FileVersion, error) {
	var ms []models.FileVersion
	query := tx.Rebind(`SELECT * FROM file_versions WHERE file_id = ?
			ORDER BY version_number ASC;`)
	err := tx.SelectContext(ctx, &ms, query, fileID)
	return ms, db.WrapError(err)
}

// CountVersions implements store.FileStore.
func (*fileStore) CountVersions(ctx context.Context, tx db.Handler, fileID int64) (int64, error) {
	var n int64
	query := tx.Rebind(`SELECT COUNT(*) FROM file_versions WHERE file_id = ?;`)
	err := tx.GetContext(ctx, &n, query, fileID)
	return n, db.WrapError(err)
}

// DeleteVersion implements store.FileStore.
func (*fileStore) DeleteVersion(ctx context.Context, tx db.Handler, fileID int64, version int64) error {
	query := tx.Rebind(`DELETE FROM file_versions WHERE file_id = ? AND version_number = ?
			RETURNING id;`)
	var id int64
	err := tx.GetContext(ctx, &id, query, fileID, version)
	return db.WrapError(err)
}

// ListLedgerEntries implements store.FileStore.
func (*fileStore) ListLedgerEntries(ctx context.Context, tx db.Handler, repoID int64) ([]models.LedgerEntry, error) {
	var ms []models.LedgerEntry
	query := `SELECT
			files.repo_id,
			files.filename,
			file_versions.version_number,
			file_versions.digest,
			file_versions.size
		FROM
			file_versions
		INNER JOIN files ON files.id = file_versions.file_id`
	args := []interface{}{}
	if repoID > 0 {
		query += ` WHERE files.repo_id = ?`
		args = append(args, repoID)
	}
	query += ` ORDER BY files.repo_id, files.filename, file_versions.version_number;`

	err := tx.SelectContext(ctx, &ms, tx.Rebind(query), args...)
	return ms, db.WrapError(err)
}
