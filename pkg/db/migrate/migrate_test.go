package migrate

import (
	"context"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db/internal/test"
	"github.com/matryer/is"
)

func TestMigrate(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	is.NoErr(Migrate(ctx, dbx))
	// Running again is a no-op.
	is.NoErr(Migrate(ctx, dbx))

	for _, table := range []string{"users", "repos", "collabs", "files", "file_versions"} {
		var name string
		err := dbx.GetContext(ctx, &name, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		is.NoErr(err) // table exists
		is.Equal(name, table)
	}
}

func TestRollback(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	is.NoErr(Migrate(ctx, dbx))
	is.NoErr(Rollback(ctx, dbx))

	var n int
	is.NoErr(dbx.GetContext(ctx, &n, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='file_versions'"))
	is.Equal(n, 0)

	// Nothing left to roll back.
	is.True(Rollback(ctx, dbx) != nil)
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"create tables": "create_tables",
		"AddFileIndex":  "add_file_index",
		"add-uploader":  "add_uploader",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) => %q, want %q", in, got, want)
		}
	}
}
