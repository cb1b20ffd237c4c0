package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/charmbracelet/log"
)

// parseBearer returns the token of a "Bearer <token>" authorization header.
func parseBearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// askCredentials answers 401 and asks for a bearer token.
func askCredentials(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	renderDetail(w, http.StatusUnauthorized, detail)
}

// withAuth rejects requests without a valid access token and stores the
// token's user in the request context. Deactivated users get a 403.
func withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token, ok := parseBearer(r.Header.Get("Authorization"))
		if !ok {
			askCredentials(w, "not authenticated")
			return
		}

		be := backend.FromContext(ctx)
		user, err := be.UserByAccessToken(ctx, token)
		switch {
		case err == nil:
		case errors.Is(err, proto.ErrInactiveUser):
			renderDetail(w, http.StatusForbidden, err.Error())
			return
		case errors.Is(err, backend.ErrInvalidToken):
			log.FromContext(ctx).Debug("rejected access token", "err", err)
			askCredentials(w, backend.ErrInvalidToken.Error())
			return
		default:
			renderError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(proto.WithUserContext(ctx, user)))
	})
}
