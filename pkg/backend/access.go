package backend

import (
	"context"
	"errors"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

// AccessLevel returns the role of user on a repository, or
// access.NoAccess when the user is not a collaborator. It fails with
// proto.ErrRepoNotFound when the repository does not exist.
func (d *Backend) AccessLevel(ctx context.Context, repoID int64, user proto.User) (access.AccessLevel, error) {
	if _, err := d.Repository(ctx, repoID); err != nil {
		return access.NoAccess, err
	}

	if user == nil {
		return access.NoAccess, nil
	}

	level, err := d.store.GetCollabAccessLevel(ctx, d.db, repoID, user.ID())
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return access.NoAccess, nil
		}
		d.logger.Error("error finding collaborator", "repo", repoID, "user", user.ID(), "error", err)
		return access.NoAccess, err
	}

	return level, nil
}

// Authorize checks that user holds at least the required role on a
// repository and returns the role it holds.
func (d *Backend) Authorize(ctx context.Context, repoID int64, user proto.User, required access.AccessLevel) (access.AccessLevel, error) {
	level, err := d.AccessLevel(ctx, repoID, user)
	if err != nil {
		return level, err
	}

	if level.Allows(required) {
		return level, nil
	}

	if !level.IsRole() {
		return level, proto.ErrUnauthorized
	}

	switch required {
	case access.WriteAccess:
		return level, proto.ErrWriteRequired
	case access.AdminAccess:
		return level, proto.ErrAdminRequired
	default:
		return level, proto.ErrUnauthorized
	}
}

// Role returns the role of user on a repository. Any role may ask.
func (d *Backend) Role(ctx context.Context, repoID int64, user proto.User) (access.AccessLevel, error) {
	return d.Authorize(ctx, repoID, user, access.ReadAccess)
}
