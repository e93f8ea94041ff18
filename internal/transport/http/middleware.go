package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gamezone/internal/model"
	"gamezone/internal/service"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// UserFrom returns the identity the auth guard attached to the request.
// Handlers behind requireAuth can rely on it being present.
func UserFrom(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}

// TokenFrom returns the raw bearer token of the current request.
func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok
}

// requireAuth guards a handler. A missing or malformed Authorization header
// is rejected before any storage access; token verification collapses every
// credential failure into the same 401 so callers cannot probe which check
// failed. On success the resolved user and raw token ride on the context.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.respond(w, http.StatusUnauthorized, msgAuthFailed, nil)
			return
		}

		user, err := h.auth.VerifyToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				h.respond(w, http.StatusUnauthorized, msgAuthFailed, nil)
				return
			}
			slog.Error("auth guard storage failure", "error", err)
			h.respond(w, http.StatusInternalServerError, msgInternal, nil)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next(w, r.WithContext(ctx))
	}
}
