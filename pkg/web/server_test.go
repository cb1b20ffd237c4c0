package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/store/database"
	"github.com/Hafiz-shamnad/TicsLab/pkg/test"
	"github.com/matryer/is"
)

func setup(t *testing.T, opts ...func(*config.Config)) *httptest.Server {
	t.Helper()
	ctx := context.TODO()
	dbx := test.OpenDB(ctx, t)

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Storage.Path = filepath.Join(cfg.DataPath, "storage")
	cfg.Auth.JWTSecret = "test-secret"
	for _, o := range opts {
		o(cfg)
	}
	ctx = config.WithContext(ctx, cfg)

	be := backend.New(ctx, cfg, dbx, database.New(ctx, dbx))
	ctx = backend.WithContext(ctx, be)

	srv := httptest.NewServer(NewRouter(ctx))
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func (c *client) do(method, path string, body io.Reader, contentType string) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.srv.URL+path, body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.srv.Client().Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	c.t.Cleanup(func() { resp.Body.Close() }) // nolint: errcheck
	return resp
}

// json sends in as a JSON body and decodes the response into out when it
// is not nil. It returns the status code.
func (c *client) json(method, path string, in, out interface{}) int {
	c.t.Helper()
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	resp := c.do(method, path, body, "application/json")
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (c *client) upload(repoID int64, filename, content string, fields map[string]string, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			c.t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			c.t.Fatalf("create form file: %v", err)
		}
		io.WriteString(fw, content) // nolint: errcheck
	}
	if err := mw.Close(); err != nil {
		c.t.Fatalf("close multipart: %v", err)
	}

	resp := c.do(http.MethodPost, fmt.Sprintf("/api/repos/%d/files/upload", repoID), &buf, mw.FormDataContentType())
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("upload: decode: %v", err)
		}
	}
	return resp.StatusCode
}

// login registers email and returns a client holding its access token.
func login(t *testing.T, srv *httptest.Server, email string) *client {
	t.Helper()
	c := &client{t: t, srv: srv}
	if code := c.json(http.MethodPost, "/auth/register", registerRequest{
		Email:    email,
		Password: "password123",
		FullName: "Test User",
	}, nil); code != http.StatusOK {
		t.Fatalf("register %s: status %d", email, code)
	}

	var tok tokenResponse
	if code := c.json(http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: "password123",
	}, &tok); code != http.StatusOK {
		t.Fatalf("login %s: status %d", email, code)
	}
	c.token = tok.AccessToken
	return c
}

func createRepo(t *testing.T, c *client, name string) repoResponse {
	t.Helper()
	var repo repoResponse
	if code := c.json(http.MethodPost, "/api/repos/create-repo", createRepoRequest{Name: name}, &repo); code != http.StatusCreated {
		t.Fatalf("create repo %s: status %d", name, code)
	}
	return repo
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	c := &client{t: t, srv: srv}
	for _, path := range []string{"/livez", "/readyz"} {
		resp := c.do(http.MethodGet, path, nil, "")
		is.Equal(resp.StatusCode, http.StatusOK)
	}
}

func TestUnauthenticated(t *testing.T) {
	srv := setup(t)
	for name, token := range map[string]string{
		"missing": "",
		"garbage": "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			c := &client{t: t, srv: srv, token: token}
			var detail errorResponse
			resp := c.do(http.MethodGet, "/api/repos", nil, "")
			is.Equal(resp.StatusCode, http.StatusUnauthorized)
			is.Equal(resp.Header.Get("WWW-Authenticate"), "Bearer")
			is.NoErr(json.NewDecoder(resp.Body).Decode(&detail))
			is.True(detail.Detail != "")
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := setup(t)
	login(t, srv, "taken@example.com")

	cases := map[string]registerRequest{
		"bad email":       {Email: "nope", Password: "password123", FullName: "Test User"},
		"short password":  {Email: "a@example.com", Password: "short", FullName: "Test User"},
		"digits in name":  {Email: "b@example.com", Password: "password123", FullName: "R2 D2"},
		"missing name":    {Email: "c@example.com", Password: "password123"},
		"duplicate email": {Email: "taken@example.com", Password: "password123", FullName: "Test User"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			c := &client{t: t, srv: srv}
			var detail errorResponse
			is.Equal(c.json(http.MethodPost, "/auth/register", req, &detail), http.StatusBadRequest)
			is.True(detail.Detail != "")
		})
	}
}

func TestLoginRateLimit(t *testing.T) {
	is := is.New(t)
	srv := setup(t, func(cfg *config.Config) {
		cfg.Auth.LoginRateLimit = 3
	})
	c := &client{t: t, srv: srv}
	req := loginRequest{Email: "ghost@example.com", Password: "password123"}
	for i := 0; i < 3; i++ {
		is.Equal(c.json(http.MethodPost, "/auth/login", req, nil), http.StatusBadRequest)
	}

	resp := c.do(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)), "application/json")
	is.Equal(resp.StatusCode, http.StatusTooManyRequests)
	is.True(resp.Header.Get("Retry-After") != "")
}

func TestInactiveUser(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx := test.OpenDB(ctx, t)
	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Storage.Path = filepath.Join(cfg.DataPath, "storage")
	cfg.Auth.JWTSecret = "test-secret"
	ctx = config.WithContext(ctx, cfg)
	be := backend.New(ctx, cfg, dbx, database.New(ctx, dbx))
	srv := httptest.NewServer(NewRouter(backend.WithContext(ctx, be)))
	t.Cleanup(srv.Close)

	c := login(t, srv, "sleepy@example.com")
	is.NoErr(be.SetUserActive(ctx, "sleepy@example.com", false))

	is.Equal(c.json(http.MethodGet, "/api/repos", nil, nil), http.StatusForbidden)
}

func TestRequestID(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	c := &client{t: t, srv: srv}
	resp := c.do(http.MethodGet, "/livez", nil, "")
	is.True(resp.Header.Get(requestIDHeader) != "")
}

func TestCORSPreflight(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/repos", nil)
	is.NoErr(err)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := srv.Client().Do(req)
	is.NoErr(err)
	defer resp.Body.Close() // nolint: errcheck
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Access-Control-Allow-Origin"), "http://localhost:3001")
}

func TestNotFound(t *testing.T) {
	is := is.New(t)
	srv := setup(t)
	c := login(t, srv, "alice@example.com")

	var detail errorResponse
	is.Equal(c.json(http.MethodGet, "/nowhere", nil, &detail), http.StatusNotFound)
	is.Equal(detail.Detail, "not found")

	is.Equal(c.json(http.MethodGet, "/api/repos/999/files", nil, &detail), http.StatusNotFound)
	is.Equal(detail.Detail, "repository not found")
}
