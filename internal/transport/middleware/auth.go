package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/jobcard-management/internal/auth"
)

// SessionService resolves a raw credential to the current user record.
type SessionService interface {
	ResolveUser(tokenString string) (*auth.User, error)
}

// Guard wraps business handlers so they only execute for requests whose
// credential verifies and whose account is still active. Authorization
// failures short-circuit with a generic 401/403 body; the wrapped handler
// is never called.
type Guard struct {
	auth   SessionService
	logger *slog.Logger
}

func NewGuard(authService SessionService, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{auth: authService, logger: logger}
}

// RequireAuth returns a middleware running token extraction, session
// verification and user loading. A non-empty roles list additionally
// requires the resolved user's role to be a member. The resolved user is
// injected into the request context; a guard finding a user already in
// context does not redo the earlier stages, so nested guards stay cheap.
func (g *Guard) RequireAuth(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				token, found := auth.TokenFromRequest(r)
				if !found {
					g.logger.Warn("auth guard: missing credential", "path", r.URL.Path)
					writeJSONError(w, http.StatusUnauthorized, "missing credentials")
					return
				}

				resolved, err := g.auth.ResolveUser(token)
				if err != nil {
					g.logger.Warn("auth guard: credential rejected", "error", err, "path", r.URL.Path)
					writeJSONError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				user = resolved
				r = r.WithContext(auth.ContextWithUser(r.Context(), user))
			}

			if len(roles) > 0 && !user.Role.In(roles) {
				g.logger.Warn("auth guard: role not permitted",
					"user_id", user.ID,
					"role", user.Role,
					"path", r.URL.Path)
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError emits the fixed error shape for authorization failures.
// Internal detail never leaks to the client.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
