package web

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

// maxMemory is the part of a multipart upload kept in memory; the rest is
// spooled to temporary files.
const maxMemory = 32 << 20

type fileResponse struct {
	Filename      string    `json:"filename"`
	Digest        string    `json:"digest"`
	UploadedAt    time.Time `json:"uploaded_at"`
	LatestVersion int64     `json:"latest_version"`
	VersionCount  int64     `json:"version_count"`
}

type versionResponse struct {
	Version     int64     `json:"version_number"`
	Digest      string    `json:"digest"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Description string    `json:"version_description"`
}

type uploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Version  int64  `json:"version"`
	Digest   string `json:"digest"`
	Size     int64  `json:"size"`
}

type roleResponse struct {
	Role string `json:"role"`
}

// FileController registers the versioned file routes on the authenticated
// repository router.
func FileController(_ context.Context, r *mux.Router) {
	s := r.PathPrefix("/{id:[0-9]+}/files").Subrouter()
	s.Use(withRepoAccess)
	s.HandleFunc("", getFiles).Methods(http.MethodGet)
	s.HandleFunc("/", getFiles).Methods(http.MethodGet)
	s.HandleFunc("/role", getRole).Methods(http.MethodGet)
	s.HandleFunc("/upload", postUpload).Methods(http.MethodPost)
	s.HandleFunc("/versions/{filename}", getVersions).Methods(http.MethodGet)
	s.HandleFunc("/{filename}/version/{version:[0-9]+}", getDownload).Methods(http.MethodGet, http.MethodHead)
	s.HandleFunc("/{filename}/version/{version:[0-9]+}", deleteVersion).Methods(http.MethodDelete)
}

// versionVar returns the version path variable.
func versionVar(r *http.Request) (int64, error) {
	v, err := strconv.ParseInt(mux.Vars(r)["version"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", proto.ErrInvalidVersion, mux.Vars(r)["version"])
	}
	return v, nil
}

// withRepoAccess resolves the caller's role on the repository of the path
// and rejects users who are not collaborators before the body is read.
func withRepoAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := repoID(r)
		if err != nil {
			renderError(w, r, err)
			return
		}

		level, err := backend.FromContext(ctx).Role(ctx, id, proto.UserFromContext(ctx))
		if err != nil {
			renderError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(access.WithContext(ctx, level)))
	})
}

func getFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	files, err := backend.FromContext(ctx).ListFiles(ctx, id, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, lo.Map(files, func(f proto.File, _ int) fileResponse {
		return fileResponse{
			Filename:      f.Filename,
			Digest:        f.LatestDigest,
			UploadedAt:    f.LatestUploadedAt,
			LatestVersion: f.LatestVersion,
			VersionCount:  f.VersionCount,
		}
	}))
}

func getRole(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, roleResponse{Role: access.FromContext(r.Context()).String()})
}

func getVersions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	versions, err := backend.FromContext(ctx).ListVersions(ctx, id, mux.Vars(r)["filename"], proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, lo.Map(versions, func(v proto.Version, _ int) versionResponse {
		return versionResponse{
			Version:     v.Version,
			Digest:      v.Digest,
			Size:        v.Size,
			UploadedAt:  v.UploadedAt,
			Description: v.Description,
		}
	}))
}

func getDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}
	version, err := versionVar(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	blob, err := backend.FromContext(ctx).Download(ctx, id, mux.Vars(r)["filename"], version, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}
	defer blob.Close() // nolint: errcheck

	ctype := mime.TypeByExtension(filepath.Ext(blob.Filename))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": blob.Filename,
	}))
	w.Header().Set("ETag", strconv.Quote(blob.Digest))
	w.Header().Set("X-File-Version", strconv.FormatInt(blob.Version, 10))

	downloadCounter.WithLabelValues(strconv.FormatInt(id, 10)).Inc()
	http.ServeContent(w, r, blob.Filename, blob.UploadedAt, blob)
}

func postUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	cfg := config.FromContext(ctx)
	r.Body = http.MaxBytesReader(w, r.Body, cfg.HTTP.MaxUploadSize)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		renderError(w, r, fmt.Errorf("%w: invalid multipart form: %w", proto.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll() // nolint: errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			renderError(w, r, fmt.Errorf("%w: file is required", proto.ErrInvalidInput))
			return
		}
		renderError(w, r, fmt.Errorf("%w: %w", proto.ErrInvalidInput, err))
		return
	}
	defer file.Close() // nolint: errcheck

	req := proto.UploadRequest{
		Filename:    header.Filename,
		Content:     file,
		Description: r.FormValue("version_description"),
	}
	if v := r.FormValue("version_number"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("%w: version number must be an integer", proto.ErrInvalidVersion))
			return
		}
		req.Version = &n
	}

	res, err := backend.FromContext(ctx).Upload(ctx, id, req, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	uploadCounter.WithLabelValues(strconv.FormatInt(id, 10)).Inc()
	renderJSON(w, http.StatusCreated, uploadResponse{
		Message:  "file uploaded successfully",
		Filename: res.Filename,
		Version:  res.Version,
		Digest:   res.Digest,
		Size:     res.Size,
	})
}

func deleteVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}
	version, err := versionVar(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	filename := mux.Vars(r)["filename"]
	if err := backend.FromContext(ctx).DeleteVersion(ctx, id, filename, version, proto.UserFromContext(ctx)); err != nil {
		renderError(w, r, err)
		return
	}

	log.FromContext(ctx).Info("version deleted", "repo", id, "file", filename, "version", version)
	versionDeleteCounter.WithLabelValues(strconv.FormatInt(id, 10)).Inc()
	renderJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("version %d of %s deleted", version, filename),
	})
}
