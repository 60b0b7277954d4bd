package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

type contextKey string

const (
	actorKey   contextKey = "actor"
	sessionKey contextKey = "sessionID"
)

// SetActor returns a context with the acting identity set. Used by auth middleware.
func SetActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the acting identity from the context, if present.
func ActorFromContext(ctx context.Context) (*domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*domain.Actor)
	return actor, ok && actor != nil && actor.User != nil
}

// SessionIDFromContext returns the id of the session backing the request's
// token, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token, re-reads the
// backing session row, and sets the resolved actor in the request context.
// If the token is missing, invalid, or its session was revoked, it responds
// with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, authService domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			userID, sessionID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			actor, err := authService.Resolve(r.Context(), userID, sessionID)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.ErrorContext(r.Context(), "failed to resolve session", "err", err)
				}
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session expired or revoked")
				return
			}
			ctx := SetActor(r.Context(), actor)
			ctx = context.WithValue(ctx, sessionKey, sessionID)
			r = r.WithContext(ctx)
			next(w, r)
		}
	}
}

// requireRole gates a handler on a role predicate. It must run inside
// RequireAuth, which put the actor in the context.
func requireRole(allowed func(domain.Role) bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
				return
			}
			if !allowed(actor.User.Role) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "insufficient role")
				return
			}
			next(w, r)
		}
	}
}

// RequireAdmin gates a handler to admin accounts.
func RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return requireRole(func(r domain.Role) bool { return r == domain.RoleAdmin })
}

// RequireStaff gates a handler to admin and helper accounts.
func RequireStaff() func(http.HandlerFunc) http.HandlerFunc {
	return requireRole(domain.Role.IsStaff)
}

// RequirePrivileged gates a handler to staff and kiosk accounts (the check-in
// scanning surface).
func RequirePrivileged() func(http.HandlerFunc) http.HandlerFunc {
	return requireRole(domain.Role.IsPrivileged)
}

// RequireKiosk gates a handler to the kiosk account itself.
func RequireKiosk() func(http.HandlerFunc) http.HandlerFunc {
	return requireRole(func(r domain.Role) bool { return r == domain.RoleKiosk })
}
