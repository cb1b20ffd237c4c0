package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

// Resolver maps repository relative names to paths under a storage root.
// Every repository is sandboxed in its own repo_<id> directory.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver for root. Relative roots are made absolute.
func NewResolver(root string) *Resolver {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Resolver{root: filepath.Clean(root)}
}

// Root returns the storage root directory.
func (r *Resolver) Root() string {
	return r.root
}

// RepoRoot returns the directory holding the blobs of a repository.
func (r *Resolver) RepoRoot(repoID int64) string {
	return filepath.Join(r.root, "repo_"+strconv.FormatInt(repoID, 10))
}

// Resolve joins segments onto the repository root and rejects any result
// that is not strictly inside it.
func (r *Resolver) Resolve(repoID int64, segments ...string) (string, error) {
	root := r.RepoRoot(repoID)
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, root)
	for _, s := range segments {
		parts = append(parts, strings.ReplaceAll(s, "/", string(os.PathSeparator)))
	}

	path := filepath.Join(parts...)
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(os.PathSeparator)) || filepath.IsAbs(rel) {
		return "", proto.ErrPathEscape
	}

	return path, nil
}

// EnsureRepositoryRoot creates the repository directory if it does not
// exist yet and returns its path.
func (r *Resolver) EnsureRepositoryRoot(repoID int64) (string, error) {
	dir := r.RepoRoot(repoID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: failed to create storage directory %s: %w", proto.ErrStorageFailure, dir, err)
	}
	return dir, nil
}
