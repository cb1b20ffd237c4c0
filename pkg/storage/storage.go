// Package storage keeps the version blobs of every repository in a
// sandboxed directory tree.
package storage

import (
	"io"
	"io/fs"
)

// Object is an opened blob.
type Object interface {
	io.Seeker
	fs.File
	Name() string
}

// Storage stores blobs per repository. Names are relative to the
// repository root and may never resolve outside of it.
type Storage interface {
	Open(repoID int64, name string) (Object, error)
	Stat(repoID int64, name string) (fs.FileInfo, error)
	Put(repoID int64, name string, r io.Reader) (int64, error)
	Delete(repoID int64, name string) error
	Exists(repoID int64, name string) (bool, error)
	EnsureRepositoryRoot(repoID int64) (string, error)
	Resolve(repoID int64, segments ...string) (string, error)
}
