package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

// LocalStorage is a storage implementation that stores blobs on the local
// filesystem, one repo_<id> directory per repository.
type LocalStorage struct {
	*Resolver
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage rooted at root.
func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{Resolver: NewResolver(root)}
}

// Delete implements Storage.
func (l *LocalStorage) Delete(repoID int64, name string) error {
	path, err := l.Resolve(repoID, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove file %s: %w", path, err)
		}
		return fmt.Errorf("%w: failed to remove file %s: %w", proto.ErrStorageFailure, path, err)
	}
	return nil
}

// Open implements Storage.
func (l *LocalStorage) Open(repoID int64, name string) (Object, error) {
	path, err := l.Resolve(repoID, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}

// Stat implements Storage.
func (l *LocalStorage) Stat(repoID int64, name string) (fs.FileInfo, error) {
	path, err := l.Resolve(repoID, name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	return info, nil
}

// Put implements Storage. The blob is written to a temporary file in the
// repository directory and renamed into place, so readers never observe a
// partial blob.
func (l *LocalStorage) Put(repoID int64, name string, r io.Reader) (int64, error) {
	path, err := l.Resolve(repoID, name)
	if err != nil {
		return 0, err
	}
	dir, err := l.EnsureRepositoryRoot(repoID)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create file %s: %w", proto.ErrStorageFailure, path, err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath) // nolint: errcheck
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close() // nolint: errcheck
		return n, fmt.Errorf("%w: failed to copy data to file %s: %w", proto.ErrStorageFailure, path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() // nolint: errcheck
		return n, fmt.Errorf("%w: failed to sync file %s: %w", proto.ErrStorageFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("%w: failed to close file %s: %w", proto.ErrStorageFailure, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return n, fmt.Errorf("%w: failed to rename %s to %s: %w", proto.ErrStorageFailure, tmpPath, path, err)
	}

	success = true
	return n, nil
}

// Exists implements Storage.
func (l *LocalStorage) Exists(repoID int64, name string) (bool, error) {
	path, err := l.Resolve(repoID, name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: failed to check existence of file %s: %w", proto.ErrStorageFailure, path, err)
}
