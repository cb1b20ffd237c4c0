package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,fullname"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AccountController registers the registration and login routes. Logins
// are rate limited per remote address.
func AccountController(ctx context.Context, r *mux.Router) {
	cfg := config.FromContext(ctx)
	limiter := newRateLimiter(cfg.Auth.LoginRateLimit)

	s := r.PathPrefix("/auth").Subrouter()
	s.HandleFunc("/register", postRegister).Methods(http.MethodPost)
	s.Handle("/login", withRateLimit(limiter, http.HandlerFunc(postLogin))).Methods(http.MethodPost)
}

func postRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	if _, err := be.CreateUser(ctx, req.Email, proto.UserOptions{
		FullName: req.FullName,
		Password: req.Password,
	}); err != nil {
		renderError(w, r, err)
		return
	}

	log.FromContext(ctx).Info("user registered", "email", req.Email)
	renderJSON(w, http.StatusOK, map[string]string{"msg": "user registered successfully"})
}

func postLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	user, err := be.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, proto.ErrInvalidCredentials):
			result = "invalid"
		case errors.Is(err, proto.ErrInactiveUser):
			result = "inactive"
		}
		loginCounter.WithLabelValues(result).Inc()
		renderError(w, r, err)
		return
	}

	token, _, err := be.GenerateAccessToken(user, 0)
	if err != nil {
		loginCounter.WithLabelValues("error").Inc()
		renderError(w, r, err)
		return
	}

	loginCounter.WithLabelValues("ok").Inc()
	renderJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
