package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/matryer/is"
)

func TestFileWorkflow(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	alice := login(t, srv, "alice@example.com")

	repo := createRepo(t, alice, "docs")
	is.Equal(repo.OwnerEmail, "alice@example.com")
	is.Equal(len(repo.Collaborators), 1)
	is.Equal(repo.Collaborators[0].Role, "admin")

	var up uploadResponse
	is.Equal(alice.upload(repo.ID, "report.pdf", "v1 content", nil, &up), http.StatusCreated)
	is.Equal(up.Filename, "report.pdf")
	is.Equal(up.Version, int64(1))
	is.Equal(up.Size, int64(len("v1 content")))

	var detail errorResponse
	is.Equal(alice.upload(repo.ID, "report.pdf", "v1 content", nil, &detail), http.StatusConflict)
	is.Equal(detail.Detail, "identical file already uploaded as latest version")

	is.Equal(alice.upload(repo.ID, "report.pdf", "v2 content", map[string]string{
		"version_description": "second draft",
	}, &up), http.StatusCreated)
	is.Equal(up.Version, int64(2))

	var files []fileResponse
	is.Equal(alice.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files", repo.ID), nil, &files), http.StatusOK)
	is.Equal(len(files), 1)
	is.Equal(files[0].LatestVersion, int64(2))
	is.Equal(files[0].VersionCount, int64(2))
	is.Equal(files[0].Digest, up.Digest)

	var versions []versionResponse
	is.Equal(alice.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/versions/report.pdf", repo.ID), nil, &versions), http.StatusOK)
	is.Equal(len(versions), 2)
	is.Equal(versions[0].Version, int64(1))
	is.Equal(versions[1].Description, "second draft")

	resp := alice.do(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/report.pdf/version/1", repo.ID), nil, "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(resp.Header.Get("Content-Disposition"), "report.pdf"))
	is.Equal(resp.Header.Get("X-File-Version"), "1")
	body, err := io.ReadAll(resp.Body)
	is.NoErr(err)
	is.Equal(string(body), "v1 content")

	var msg messageResponse
	is.Equal(alice.json(http.MethodDelete, fmt.Sprintf("/api/repos/%d/files/report.pdf/version/2", repo.ID), nil, &msg), http.StatusOK)
	is.True(msg.Message != "")

	is.Equal(alice.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files", repo.ID), nil, &files), http.StatusOK)
	is.Equal(files[0].LatestVersion, int64(1))
	is.Equal(files[0].VersionCount, int64(1))

	is.Equal(alice.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/report.pdf/version/2", repo.ID), nil, &detail), http.StatusNotFound)
	is.Equal(detail.Detail, "version not found")

	var role roleResponse
	is.Equal(alice.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/role", repo.ID), nil, &role), http.StatusOK)
	is.Equal(role.Role, "admin")
}

func TestCollaboratorWorkflow(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	alice := login(t, srv, "alice@example.com")
	bob := login(t, srv, "bob@example.com")
	carol := login(t, srv, "carol@example.com")
	repo := createRepo(t, alice, "shared")
	collabs := fmt.Sprintf("/api/repos/%d/collaborators", repo.ID)

	var added collaboratorResponse
	is.Equal(alice.json(http.MethodPost, collabs, addCollaboratorRequest{
		UserEmail: "bob@example.com",
		Role:      "write",
	}, &added), http.StatusOK)
	is.Equal(added, collaboratorResponse{UserEmail: "bob@example.com", Role: "write"})

	var detail errorResponse
	for name, tc := range map[string]struct {
		actor *client
		req   addCollaboratorRequest
		code  int
	}{
		"duplicate":    {alice, addCollaboratorRequest{UserEmail: "bob@example.com", Role: "read"}, http.StatusBadRequest},
		"self":         {alice, addCollaboratorRequest{UserEmail: "alice@example.com", Role: "read"}, http.StatusBadRequest},
		"unknown user": {alice, addCollaboratorRequest{UserEmail: "nobody@example.com", Role: "read"}, http.StatusNotFound},
		"bad role":     {alice, addCollaboratorRequest{UserEmail: "carol@example.com", Role: "owner"}, http.StatusBadRequest},
		"not admin":    {bob, addCollaboratorRequest{UserEmail: "carol@example.com", Role: "read"}, http.StatusForbidden},
		"outsider":     {carol, addCollaboratorRequest{UserEmail: "carol@example.com", Role: "admin"}, http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(tc.actor.json(http.MethodPost, collabs, tc.req, &detail), tc.code)
			is.True(detail.Detail != "")
		})
	}

	var up uploadResponse
	is.Equal(bob.upload(repo.ID, "notes.txt", "from bob", nil, &up), http.StatusCreated)
	is.Equal(up.Version, int64(1))

	is.Equal(bob.json(http.MethodDelete, fmt.Sprintf("/api/repos/%d/files/notes.txt/version/1", repo.ID), nil, &detail), http.StatusForbidden)
	is.Equal(detail.Detail, "admin permission required")

	var role roleResponse
	is.Equal(bob.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/role", repo.ID), nil, &role), http.StatusOK)
	is.Equal(role.Role, "write")

	is.Equal(carol.json(http.MethodGet, fmt.Sprintf("/api/repos/%d/files", repo.ID), nil, &detail), http.StatusForbidden)

	var repos []repoResponse
	is.Equal(bob.json(http.MethodGet, "/api/repos", nil, &repos), http.StatusOK)
	is.Equal(len(repos), 1)
	is.Equal(repos[0].Name, "shared")
	is.Equal(len(repos[0].Collaborators), 2)

	is.Equal(carol.json(http.MethodGet, "/api/repos", nil, &repos), http.StatusOK)
	is.Equal(len(repos), 0)

	var list []collaboratorResponse
	is.Equal(bob.json(http.MethodGet, collabs, nil, &list), http.StatusOK)
	is.Equal(len(list), 2)
}

func TestReadOnlyCollaborator(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	alice := login(t, srv, "alice@example.com")
	dave := login(t, srv, "dave@example.com")
	repo := createRepo(t, alice, "readonly")

	is.Equal(alice.json(http.MethodPost, fmt.Sprintf("/api/repos/%d/collaborators", repo.ID), addCollaboratorRequest{
		UserEmail: "dave@example.com",
		Role:      "read",
	}, nil), http.StatusOK)
	is.Equal(alice.upload(repo.ID, "a.txt", "hello", nil, nil), http.StatusCreated)

	var detail errorResponse
	is.Equal(dave.upload(repo.ID, "a.txt", "changed", nil, &detail), http.StatusForbidden)
	is.Equal(detail.Detail, "write permission required")

	resp := dave.do(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/a.txt/version/1", repo.ID), nil, "")
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestUploadValidation(t *testing.T) {
	srv := setup(t, func(cfg *config.Config) {
		cfg.HTTP.MaxUploadSize = 64 << 10
	})
	alice := login(t, srv, "alice@example.com")
	repo := createRepo(t, alice, "validation")
	is.New(t).Equal(alice.upload(repo.ID, "seed.txt", "one", nil, nil), http.StatusCreated)

	for name, tc := range map[string]struct {
		filename string
		content  string
		fields   map[string]string
		code     int
	}{
		"missing file":     {"", "", nil, http.StatusBadRequest},
		"empty file":       {"empty.txt", "", nil, http.StatusBadRequest},
		"version not int":  {"a.txt", "x", map[string]string{"version_number": "abc"}, http.StatusBadRequest},
		"version zero":     {"a.txt", "x", map[string]string{"version_number": "0"}, http.StatusBadRequest},
		"version too low":  {"seed.txt", "two", map[string]string{"version_number": "1"}, http.StatusBadRequest},
		"only punctuation": {"...", "x", nil, http.StatusBadRequest},
		"too large":        {"big.bin", strings.Repeat("x", 128<<10), nil, http.StatusRequestEntityTooLarge},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			var detail errorResponse
			is.Equal(alice.upload(repo.ID, tc.filename, tc.content, tc.fields, &detail), tc.code)
			is.True(detail.Detail != "")
		})
	}
}

func TestUploadSanitizesFilename(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	alice := login(t, srv, "alice@example.com")
	repo := createRepo(t, alice, "names")

	var up uploadResponse
	is.Equal(alice.upload(repo.ID, "my report (final).txt", "text", map[string]string{
		"version_number": "5",
	}, &up), http.StatusCreated)
	is.Equal(up.Filename, "my_report_final.txt")
	is.Equal(up.Version, int64(5))

	resp := alice.do(http.MethodGet, fmt.Sprintf("/api/repos/%d/files/my_report_final.txt/version/5", repo.ID), nil, "")
	is.Equal(resp.StatusCode, http.StatusOK)
}
