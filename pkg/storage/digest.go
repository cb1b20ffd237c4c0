package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// digestChunkSize bounds the memory used while hashing an upload.
const digestChunkSize = 32 << 10

// Digest returns the hex encoded SHA-256 of r and the number of bytes read.
// r is consumed in bounded chunks and rewound to its start afterwards, so a
// following read yields the same bytes.
func Digest(r io.ReadSeeker) (string, int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("rewind: %w", err)
	}

	h := sha256.New()
	buf := make([]byte, digestChunkSize)
	n, err := io.CopyBuffer(h, onlyReader{r}, buf)
	if err != nil {
		return "", n, fmt.Errorf("hash: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", n, fmt.Errorf("rewind: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// onlyReader hides WriterTo implementations so io.CopyBuffer honors the
// chunk size.
type onlyReader struct {
	io.Reader
}
