package backend

import (
	"context"
	"errors"
	"io/fs"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/Hafiz-shamnad/TicsLab/pkg/storage"
)

// IntegrityIssue is a ledger entry that does not match its blob.
type IntegrityIssue struct {
	RepoID   int64
	Filename string
	Version  int64
	Digest   string
	Size     int64
	// Problem is either "missing blob" or "size mismatch".
	Problem string
	Err     error
}

// Verify checks that every version of a repository, or of all repositories
// when repoID is zero, has a blob of the recorded size. It only reports and
// never changes the ledger or the blobs.
func (d *Backend) Verify(ctx context.Context, repoID int64) ([]IntegrityIssue, error) {
	entries, err := d.store.ListLedgerEntries(ctx, d.db, repoID)
	if err != nil {
		return nil, err
	}

	var issues []IntegrityIssue
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return issues, err
		}

		issue := IntegrityIssue{
			RepoID:   e.RepoID,
			Filename: e.Filename,
			Version:  e.Version,
			Digest:   e.Digest,
			Size:     e.Size,
		}

		info, err := d.storage.Stat(e.RepoID, storage.BlobName(e.Filename, e.Version))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			issue.Problem = "missing blob"
			issue.Err = proto.ErrBlobNotFound
		case err != nil:
			return issues, err
		case info.Size() != e.Size:
			issue.Problem = "size mismatch"
			issue.Err = proto.ErrIntegrityFailure
		default:
			continue
		}

		d.logger.Warn("integrity failure", "repo", e.RepoID, "file", e.Filename, "version", e.Version, "problem", issue.Problem)
		issues = append(issues, issue)
	}

	return issues, nil
}
