package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"
	"unicode/utf8"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/Hafiz-shamnad/TicsLab/pkg/storage"
	"github.com/avast/retry-go/v4"
	"github.com/samber/lo"
)

// maxDescriptionLen is the longest version description kept, in characters.
const maxDescriptionLen = 255

// uploadAttempts bounds the retries of an auto-numbered upload that lost a
// version number race.
const uploadAttempts = 3

// ListFiles returns every file of a repository with its latest version.
func (d *Backend) ListFiles(ctx context.Context, repoID int64, user proto.User) ([]proto.File, error) {
	if _, err := d.Authorize(ctx, repoID, user, access.ReadAccess); err != nil {
		return nil, err
	}

	ms, err := d.store.ListFileSummaries(ctx, d.db, repoID)
	if err != nil {
		return nil, err
	}

	return lo.Map(ms, func(m models.FileSummary, _ int) proto.File {
		return proto.File{
			Filename:         m.Filename,
			LatestDigest:     m.LatestDigest,
			LatestUploadedAt: m.LatestUploadedAt,
			VersionCount:     m.VersionCount,
			LatestVersion:    m.MaxVersion,
		}
	}), nil
}

// ListVersions returns the versions of a file in ascending order.
func (d *Backend) ListVersions(ctx context.Context, repoID int64, filename string, user proto.User) ([]proto.Version, error) {
	if _, err := d.Authorize(ctx, repoID, user, access.ReadAccess); err != nil {
		return nil, err
	}

	filename, err := secureFilename(filename)
	if err != nil {
		return nil, err
	}

	f, err := d.store.GetFile(ctx, d.db, repoID, filename)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrFileNotFound
		}
		return nil, err
	}

	ms, err := d.store.ListVersions(ctx, d.db, f.ID)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, proto.ErrFileNotFound
	}

	return lo.Map(ms, func(m models.FileVersion, _ int) proto.Version {
		return proto.Version{
			Version:     m.Version,
			Digest:      m.Digest,
			Size:        m.Size,
			Description: m.Description.String,
			UploadedAt:  m.UploadedAt,
		}
	}), nil
}

// Download opens a version of a file. The caller must close the returned
// blob.
func (d *Backend) Download(ctx context.Context, repoID int64, filename string, version int64, user proto.User) (*proto.Blob, error) {
	if _, err := d.Authorize(ctx, repoID, user, access.ReadAccess); err != nil {
		return nil, err
	}

	filename, err := secureFilename(filename)
	if err != nil {
		return nil, err
	}

	f, err := d.store.GetFile(ctx, d.db, repoID, filename)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrFileNotFound
		}
		return nil, err
	}

	v, err := d.store.GetVersion(ctx, d.db, f.ID, version)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrVersionNotFound
		}
		return nil, err
	}

	obj, err := d.storage.Open(repoID, storage.BlobName(filename, version))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("ledger entry without blob", "repo", repoID, "file", filename, "version", version)
			return nil, proto.ErrBlobNotFound
		}
		if errors.Is(err, proto.ErrPathEscape) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", proto.ErrStorageFailure, err)
	}

	return &proto.Blob{
		ReadSeekCloser: obj,
		Filename:       filename,
		Version:        v.Version,
		Digest:         v.Digest,
		Size:           v.Size,
		UploadedAt:     v.UploadedAt,
	}, nil
}

// Upload stores a new version of a file. The blob is written while the
// ledger transaction holds the file row, and removed again if the
// transaction does not commit.
func (d *Backend) Upload(ctx context.Context, repoID int64, req proto.UploadRequest, user proto.User) (*proto.UploadResult, error) {
	if _, err := d.Authorize(ctx, repoID, user, access.WriteAccess); err != nil {
		return nil, err
	}

	filename, err := secureFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	if req.Content == nil {
		return nil, proto.ErrEmptyFile
	}

	digest, size, err := storage.Digest(req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %w", proto.ErrStorageFailure, err)
	}
	if size == 0 {
		return nil, proto.ErrEmptyFile
	}

	// Monotonicity is checked against the ledger later.
	if req.Version != nil && *req.Version <= 0 {
		return nil, fmt.Errorf("%w: version number must be positive", proto.ErrInvalidVersion)
	}

	description := truncate(req.Description, maxDescriptionLen)

	if _, err := d.storage.EnsureRepositoryRoot(repoID); err != nil {
		return nil, err
	}

	var result *proto.UploadResult
	err = retry.Do(
		func() error {
			var err error
			result, err = d.upload(ctx, repoID, filename, req, digest, size, description, user)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uploadAttempts),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return req.Version == nil && errors.Is(err, db.ErrDuplicateKey)
		}),
		retry.OnRetry(func(n uint, err error) {
			d.logger.Debug("retrying upload", "repo", repoID, "file", filename, "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			if req.Version != nil {
				return nil, fmt.Errorf("%w: version %d already exists", proto.ErrInvalidVersion, *req.Version)
			}
			return nil, fmt.Errorf("%w: concurrent upload of %s", proto.ErrConflict, filename)
		}
		return nil, err
	}

	d.logger.Info("file uploaded", "repo", repoID, "file", filename, "version", result.Version, "size", size)
	return result, nil
}

// upload runs one ledger transaction of Upload.
func (d *Backend) upload(ctx context.Context, repoID int64, filename string, req proto.UploadRequest, digest string, size int64, description string, user proto.User) (*proto.UploadResult, error) {
	var (
		version int64
		blob    string
	)

	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		f, err := d.store.UpsertFile(ctx, tx, repoID, filename)
		if err != nil {
			return err
		}

		version, err = nextVersion(f.LastVersion, req.Version)
		if err != nil {
			return err
		}

		latest, ok, err := d.latestVersion(ctx, tx, f.ID)
		if err != nil {
			return err
		}
		if ok && latest.Digest == digest {
			return proto.ErrDuplicateContent
		}

		if _, err := req.Content.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("%w: failed to rewind upload: %w", proto.ErrStorageFailure, err)
		}

		name := storage.BlobName(filename, version)
		n, err := d.storage.Put(repoID, name, req.Content)
		if err != nil {
			return err
		}
		blob = name
		if n != size {
			return fmt.Errorf("%w: upload changed while storing: read %d of %d bytes", proto.ErrStorageFailure, n, size)
		}

		if err := d.store.CreateVersion(ctx, tx, models.FileVersion{
			FileID:      f.ID,
			Version:     version,
			Digest:      digest,
			Size:        size,
			Description: sql.NullString{String: description, Valid: description != ""},
			UploaderID:  sql.NullInt64{Int64: user.ID(), Valid: true},
		}); err != nil {
			return err
		}

		if err := d.store.SetFileLastVersion(ctx, tx, f.ID, version); err != nil {
			return err
		}

		_, err = d.recomputeLatest(ctx, tx, f.ID)
		return err
	})
	if err != nil {
		if blob != "" {
			if rerr := d.storage.Delete(repoID, blob); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
				d.logger.Error("failed to remove blob of aborted upload", "repo", repoID, "blob", blob, "err", rerr)
			}
		}
		return nil, err
	}

	return &proto.UploadResult{
		Filename: filename,
		Version:  version,
		Digest:   digest,
		Size:     size,
	}, nil
}

// DeleteVersion removes one version of a file. A blob that is already gone
// is logged and ignored. Deleting the last version removes the file.
func (d *Backend) DeleteVersion(ctx context.Context, repoID int64, filename string, version int64, user proto.User) error {
	if _, err := d.Authorize(ctx, repoID, user, access.AdminAccess); err != nil {
		return err
	}

	filename, err := secureFilename(filename)
	if err != nil {
		return err
	}

	var exists bool
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		f, err := d.store.LockFile(ctx, tx, repoID, filename)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrFileNotFound
			}
			return err
		}

		if _, err := d.store.GetVersion(ctx, tx, f.ID, version); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrVersionNotFound
			}
			return err
		}

		blob := storage.BlobName(filename, version)
		if err := d.storage.Delete(repoID, blob); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			d.logger.Warn("blob already missing", "repo", repoID, "file", filename, "version", version)
		}

		if err := d.store.DeleteVersion(ctx, tx, f.ID, version); err != nil {
			return err
		}

		exists, err = d.recomputeLatest(ctx, tx, f.ID)
		return err
	}); err != nil {
		return err
	}

	d.logger.Info("version deleted", "repo", repoID, "file", filename, "version", version, "file_removed", !exists)
	return nil
}

func secureFilename(name string) (string, error) {
	filename := storage.SecureFilename(name)
	if filename == "" {
		return "", proto.ErrInvalidFilename
	}
	return filename, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
