package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type createRepoRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type addCollaboratorRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=read write admin"`
}

type collaboratorResponse struct {
	UserEmail string `json:"user_email"`
	Role      string `json:"role"`
}

type repoResponse struct {
	ID            int64                  `json:"id"`
	Name          string                 `json:"name"`
	OwnerEmail    string                 `json:"owner_email"`
	CreatedAt     time.Time              `json:"created_at"`
	Collaborators []collaboratorResponse `json:"collaborators"`
}

// RepoController registers the repository routes. All of them require an
// authenticated user.
func RepoController(ctx context.Context, r *mux.Router) {
	s := r.PathPrefix("/api/repos").Subrouter()
	s.Use(withAuth)
	s.HandleFunc("", getRepos).Methods(http.MethodGet)
	s.HandleFunc("/", getRepos).Methods(http.MethodGet)
	s.HandleFunc("/create-repo", postRepo).Methods(http.MethodPost)
	s.HandleFunc("/{id:[0-9]+}/collaborators", getCollaborators).Methods(http.MethodGet)
	s.HandleFunc("/{id:[0-9]+}/collaborators", postCollaborator).Methods(http.MethodPost)

	FileController(ctx, s)
}

// repoID returns the repository id path variable.
func repoID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid repository id", proto.ErrInvalidInput)
	}
	return id, nil
}

func toCollaboratorResponse(c proto.Collaborator, _ int) collaboratorResponse {
	return collaboratorResponse{
		UserEmail: c.Email,
		Role:      c.AccessLevel.String(),
	}
}

func toRepoResponse(r proto.Repository, collabs []proto.Collaborator) repoResponse {
	return repoResponse{
		ID:            r.ID(),
		Name:          r.Name(),
		OwnerEmail:    r.OwnerEmail(),
		CreatedAt:     r.CreatedAt(),
		Collaborators: lo.Map(collabs, toCollaboratorResponse),
	}
}

func getRepos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	repos, err := be.UserRepositories(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	collabs, err := be.CollaboratorsByRepo(ctx, lo.Map(repos, func(r proto.Repository, _ int) int64 {
		return r.ID()
	}))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, lo.Map(repos, func(r proto.Repository, _ int) repoResponse {
		return toRepoResponse(r, collabs[r.ID()])
	}))
}

func postRepo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createRepoRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	repo, err := be.CreateRepository(ctx, strings.TrimSpace(req.Name), proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	collabs, err := be.Collaborators(ctx, repo.ID())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, toRepoResponse(repo, collabs))
}

func getCollaborators(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	if _, err := be.Authorize(ctx, id, proto.UserFromContext(ctx), access.ReadAccess); err != nil {
		renderError(w, r, err)
		return
	}

	collabs, err := be.Collaborators(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, lo.Map(collabs, toCollaboratorResponse))
}

func postCollaborator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := repoID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req addCollaboratorRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	c, err := be.AddCollaborator(ctx, id, proto.UserFromContext(ctx), req.UserEmail, access.ParseAccessLevel(req.Role))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toCollaboratorResponse(c, 0))
}
