package proto

import (
	"io"
	"time"
)

// File summarizes a versioned file.
type File struct {
	Filename         string
	LatestDigest     string
	LatestUploadedAt time.Time
	VersionCount     int64
	LatestVersion    int64
}

// Version is one immutable version of a file.
type Version struct {
	Version     int64
	Digest      string
	Size        int64
	Description string
	UploadedAt  time.Time
}

// UploadRequest describes a new version to store.
type UploadRequest struct {
	// Filename is the client supplied name. It is sanitized before use.
	Filename string
	// Content is the file body. It is read twice: once to hash, once to
	// persist.
	Content io.ReadSeeker
	// Version is the requested version number. Nil means the next one.
	Version *int64
	// Description is an optional note, truncated to 255 characters.
	Description string
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	Filename string
	Version  int64
	Digest   string
	Size     int64
}

// Blob is an opened version ready to be streamed. The caller must close it.
type Blob struct {
	io.ReadSeekCloser
	Filename   string
	Version    int64
	Digest     string
	Size       int64
	UploadedAt time.Time
}
