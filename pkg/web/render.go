package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/charmbracelet/log"
)

// errorResponse is the body of every failed API request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// messageResponse is the body of requests answering with a message only.
type messageResponse struct {
	Message string `json:"message"`
}

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding json", "err", err)
	}
}

func renderDetail(w http.ResponseWriter, code int, detail string) {
	renderJSON(w, code, errorResponse{Detail: detail})
}

func renderNotFound(w http.ResponseWriter, _ *http.Request) {
	renderDetail(w, http.StatusNotFound, "not found")
}

func renderMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	renderDetail(w, http.StatusMethodNotAllowed, "method not allowed")
}

// statusOf maps an error to its HTTP status code.
func statusOf(err error) int {
	switch proto.Kind(err) {
	case proto.ErrNotFound, proto.ErrIntegrityFailure:
		return http.StatusNotFound
	case proto.ErrPermissionDenied:
		return http.StatusForbidden
	case proto.ErrInvalidInput:
		return http.StatusBadRequest
	case proto.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes err as a JSON detail. Storage failures keep their kind
// as the detail, anything unclassified is reported as an internal error.
// The full error of a 5xx response is only logged.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	detail := err.Error()
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		code = http.StatusRequestEntityTooLarge
		detail = fmt.Sprintf("request body too large, limit is %d bytes", maxBytes.Limit)
	case errors.Is(err, proto.ErrStorageFailure):
		detail = proto.ErrStorageFailure.Error()
	case code == http.StatusInternalServerError:
		detail = "internal server error"
	}

	if code >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
	}
	renderDetail(w, code, detail)
}
