package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store/database"
	"github.com/Hafiz-shamnad/TicsLab/pkg/test"
)

func setup(t *testing.T) (context.Context, *Backend) {
	t.Helper()
	ctx := context.TODO()
	dbx := test.OpenDB(ctx, t)

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Storage.Path = filepath.Join(cfg.DataPath, "storage")
	cfg.Auth.JWTSecret = "test-secret"
	ctx = config.WithContext(ctx, cfg)

	return ctx, New(ctx, cfg, dbx, database.New(ctx, dbx))
}

func createUser(t *testing.T, ctx context.Context, be *Backend, email string) proto.User {
	t.Helper()
	u, err := be.CreateUser(ctx, email, proto.UserOptions{
		FullName: "Test User",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func createRepo(t *testing.T, ctx context.Context, be *Backend, name string, owner proto.User) proto.Repository {
	t.Helper()
	r, err := be.CreateRepository(ctx, name, owner)
	if err != nil {
		t.Fatalf("create repository %s: %v", name, err)
	}
	return r
}

func upload(ctx context.Context, be *Backend, repoID int64, user proto.User, filename, content string) (*proto.UploadResult, error) {
	return be.Upload(ctx, repoID, proto.UploadRequest{
		Filename: filename,
		Content:  strings.NewReader(content),
	}, user)
}
