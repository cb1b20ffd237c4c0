package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

func TestStatusOf(t *testing.T) {
	for err, want := range map[error]int{
		proto.ErrRepoNotFound:      http.StatusNotFound,
		proto.ErrBlobNotFound:      http.StatusNotFound,
		proto.ErrWriteRequired:     http.StatusForbidden,
		proto.ErrInvalidFilename:   http.StatusBadRequest,
		proto.ErrDuplicateContent:  http.StatusConflict,
		proto.ErrStorageFailure:    http.StatusInternalServerError,
		errors.New("disk on fire"): http.StatusInternalServerError,
		fmt.Errorf("%w: version 3 already exists", proto.ErrInvalidVersion): http.StatusBadRequest,
	} {
		if got := statusOf(err); got != want {
			t.Errorf("statusOf(%v) => %d, want %d", err, got, want)
		}
	}
}

func TestParseBearer(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"Bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	} {
		got, ok := parseBearer(header)
		if got != want || ok != (want != "") {
			t.Errorf("parseBearer(%q) => %q, %v, want %q", header, got, ok, want)
		}
	}
}
