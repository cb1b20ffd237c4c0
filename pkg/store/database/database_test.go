package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store"
	"github.com/Hafiz-shamnad/TicsLab/pkg/test"
	"github.com/matryer/is"
)

func setup(t *testing.T) (context.Context, *db.DB, store.Store) {
	t.Helper()
	ctx := context.TODO()
	dbx := test.OpenDB(ctx, t)
	return ctx, dbx, New(ctx, dbx)
}

func TestUsers(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setup(t)

	id, err := s.CreateUser(ctx, dbx, "Alice@Example.com", "Alice Doe", "hash")
	is.NoErr(err)
	is.True(id > 0)

	u, err := s.FindUserByEmail(ctx, dbx, "alice@example.COM")
	is.NoErr(err)
	is.Equal(u.ID, id)
	is.Equal(u.Email, "Alice@Example.com")
	is.True(u.IsActive)

	_, err = s.CreateUser(ctx, dbx, "alice@example.com", "Other", "hash")
	is.True(errors.Is(err, db.ErrDuplicateKey))

	_, err = s.FindUserByEmail(ctx, dbx, "nobody@example.com")
	is.True(errors.Is(err, db.ErrRecordNotFound))

	is.NoErr(s.SetUserActiveByEmail(ctx, dbx, "ALICE@example.com", false))
	u, err = s.GetUserByID(ctx, dbx, id)
	is.NoErr(err)
	is.True(!u.IsActive)

	err = s.SetUserActiveByEmail(ctx, dbx, "nobody@example.com", false)
	is.True(errors.Is(err, db.ErrRecordNotFound))

	all, err := s.GetAllUsers(ctx, dbx)
	is.NoErr(err)
	is.Equal(len(all), 1)
}

func TestReposAndCollabs(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setup(t)

	alice, err := s.CreateUser(ctx, dbx, "alice@example.com", "Alice", "hash")
	is.NoErr(err)
	bob, err := s.CreateUser(ctx, dbx, "bob@example.com", "Bob", "hash")
	is.NoErr(err)

	repoID, err := s.CreateRepo(ctx, dbx, "  Docs ", alice)
	is.NoErr(err)
	is.NoErr(s.AddCollab(ctx, dbx, repoID, alice, access.AdminAccess))

	_, err = s.CreateRepo(ctx, dbx, "docs", alice)
	is.True(errors.Is(err, db.ErrDuplicateKey)) // case-insensitive per owner

	_, err = s.CreateRepo(ctx, dbx, "docs", bob)
	is.NoErr(err) // other owner

	r, err := s.GetRepoByID(ctx, dbx, repoID)
	is.NoErr(err)
	is.Equal(r.Name, "Docs")
	is.Equal(r.OwnerEmail, "alice@example.com")

	level, err := s.GetCollabAccessLevel(ctx, dbx, repoID, bob)
	is.True(errors.Is(err, db.ErrRecordNotFound))
	is.Equal(level, access.NoAccess)

	is.NoErr(s.AddCollab(ctx, dbx, repoID, bob, access.ReadAccess))
	err = s.AddCollab(ctx, dbx, repoID, bob, access.WriteAccess)
	is.True(errors.Is(err, db.ErrDuplicateKey))

	level, err = s.GetCollabAccessLevel(ctx, dbx, repoID, bob)
	is.NoErr(err)
	is.Equal(level, access.ReadAccess)

	collabs, err := s.ListCollabsByRepo(ctx, dbx, repoID)
	is.NoErr(err)
	is.Equal(len(collabs), 2)
	is.Equal(collabs[0].Email, "alice@example.com")
	is.Equal(collabs[0].AccessLevel, access.AdminAccess)
	is.Equal(collabs[1].Email, "bob@example.com")

	repos, err := s.GetCollabRepos(ctx, dbx, bob)
	is.NoErr(err)
	is.Equal(len(repos), 1)
	is.Equal(repos[0].ID, repoID)

	all, err := s.GetAllRepos(ctx, dbx)
	is.NoErr(err)
	is.Equal(len(all), 2)

	many, err := s.ListCollabsByRepos(ctx, dbx, []int64{repoID, all[1].ID})
	is.NoErr(err)
	is.Equal(len(many), 2)

	none, err := s.ListCollabsByRepos(ctx, dbx, nil)
	is.NoErr(err)
	is.Equal(len(none), 0)
}

func TestFileLedger(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setup(t)

	uid, err := s.CreateUser(ctx, dbx, "alice@example.com", "Alice", "hash")
	is.NoErr(err)
	repoID, err := s.CreateRepo(ctx, dbx, "docs", uid)
	is.NoErr(err)

	_, err = s.LockFile(ctx, dbx, repoID, "a.txt")
	is.True(errors.Is(err, db.ErrRecordNotFound))

	var fileID int64
	is.NoErr(dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		f, err := s.UpsertFile(ctx, tx, repoID, "a.txt")
		if err != nil {
			return err
		}
		fileID = f.ID
		for i, digest := range []string{"d1", "d2", "d3"} {
			if err := s.CreateVersion(ctx, tx, models.FileVersion{
				FileID:      fileID,
				Version:     int64(i + 1),
				Digest:      digest,
				Size:        int64(10 * (i + 1)),
				Description: sql.NullString{String: "note", Valid: i == 0},
				UploaderID:  sql.NullInt64{Int64: uid, Valid: true},
			}); err != nil {
				return err
			}
		}
		if err := s.SetFileLastVersion(ctx, tx, fileID, 3); err != nil {
			return err
		}
		return s.RefreshFileLatest(ctx, tx, fileID)
	}))

	again, err := s.UpsertFile(ctx, dbx, repoID, "a.txt")
	is.NoErr(err)
	is.Equal(again.ID, fileID) // upsert returns the existing row
	is.Equal(again.LastVersion, int64(3))

	locked, err := s.LockFile(ctx, dbx, repoID, "a.txt")
	is.NoErr(err)
	is.Equal(locked.ID, fileID)

	err = s.CreateVersion(ctx, dbx, models.FileVersion{FileID: fileID, Version: 2, Digest: "x", Size: 1})
	is.True(errors.Is(err, db.ErrDuplicateKey))

	f, err := s.GetFile(ctx, dbx, repoID, "a.txt")
	is.NoErr(err)
	is.Equal(f.LatestDigest, "d3")

	sums, err := s.ListFileSummaries(ctx, dbx, repoID)
	is.NoErr(err)
	is.Equal(len(sums), 1)
	is.Equal(sums[0].VersionCount, int64(3))
	is.Equal(sums[0].MaxVersion, int64(3))
	is.Equal(sums[0].LatestDigest, "d3")

	latest, err := s.GetLatestVersion(ctx, dbx, fileID)
	is.NoErr(err)
	is.Equal(latest.Version, int64(3))

	v1, err := s.GetVersion(ctx, dbx, fileID, 1)
	is.NoErr(err)
	is.Equal(v1.Description.String, "note")
	is.Equal(v1.Size, int64(10))

	is.NoErr(s.DeleteVersion(ctx, dbx, fileID, 3))
	err = s.DeleteVersion(ctx, dbx, fileID, 3)
	is.True(errors.Is(err, db.ErrRecordNotFound))
	is.NoErr(s.RefreshFileLatest(ctx, dbx, fileID))

	f, err = s.GetFile(ctx, dbx, repoID, "a.txt")
	is.NoErr(err)
	is.Equal(f.LatestDigest, "d2")

	is.NoErr(s.SetFileLastVersion(ctx, dbx, fileID, 2))
	f, err = s.GetFile(ctx, dbx, repoID, "a.txt")
	is.NoErr(err)
	is.Equal(f.LastVersion, int64(3)) // never lowered

	vs, err := s.ListVersions(ctx, dbx, fileID)
	is.NoErr(err)
	is.Equal(len(vs), 2)
	is.Equal(vs[0].Version, int64(1))
	is.Equal(vs[1].Version, int64(2))

	n, err := s.CountVersions(ctx, dbx, fileID)
	is.NoErr(err)
	is.Equal(n, int64(2))

	entries, err := s.ListLedgerEntries(ctx, dbx, 0)
	is.NoErr(err)
	is.Equal(len(entries), 2)
	is.Equal(entries[1].Filename, "a.txt")
	is.Equal(entries[1].Version, int64(2))

	entries, err = s.ListLedgerEntries(ctx, dbx, repoID+1)
	is.NoErr(err)
	is.Equal(len(entries), 0)

	is.NoErr(s.DeleteFile(ctx, dbx, fileID))
	_, err = s.GetFile(ctx, dbx, repoID, "a.txt")
	is.True(errors.Is(err, db.ErrRecordNotFound))
	n, err = s.CountVersions(ctx, dbx, fileID)
	is.NoErr(err)
	is.Equal(n, int64(0)) // cascaded
}
