package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

// latestVersion returns the highest version of a file. ok is false when
// the file has no versions yet.
func (d *Backend) latestVersion(ctx context.Context, h db.Handler, fileID int64) (v models.FileVersion, ok bool, err error) {
	v, err = d.store.GetLatestVersion(ctx, h, fileID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.FileVersion{}, false, nil
		}
		return models.FileVersion{}, false, err
	}
	return v, true, nil
}

// nextVersion picks the version number of a new upload given the highest
// number ever assigned to the file (zero for a new file) and the optionally
// requested number. Numbers of deleted versions are never handed out again.
func nextVersion(latest int64, requested *int64) (int64, error) {
	if requested == nil {
		return latest + 1, nil
	}

	n := *requested
	if n <= 0 {
		return 0, fmt.Errorf("%w: version number must be positive", proto.ErrInvalidVersion)
	}
	if n <= latest {
		return 0, fmt.Errorf("%w: version number must be greater than the latest version (%d)", proto.ErrInvalidVersion, latest)
	}

	return n, nil
}

// recomputeLatest brings the latest columns of a file back in line with
// its highest remaining version, or deletes the file once no version is
// left. It reports whether the file still exists.
func (d *Backend) recomputeLatest(ctx context.Context, tx *db.Tx, fileID int64) (bool, error) {
	n, err := d.store.CountVersions(ctx, tx, fileID)
	if err != nil {
		return false, err
	}

	if n == 0 {
		return false, d.store.DeleteFile(ctx, tx, fileID)
	}

	return true, d.store.RefreshFileLatest(ctx, tx, fileID)
}
