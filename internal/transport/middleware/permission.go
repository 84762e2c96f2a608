package middleware

import (
	"net/http"

	"github.com/frahmantamala/jobcard-management/internal/auth"
)

// RequirePermission creates a middleware that checks the request against a
// logical permission key through the validator. The validator already
// returns the uniform status code mapping (401 credential/identity, 403
// role, 500 unmapped key), so this only translates the result to HTTP.
func RequirePermission(validator *auth.PermissionValidator, key auth.PermissionKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := validator.Validate(r, key)
			if !result.Success {
				writeJSONError(w, result.StatusCode, result.Error)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), result.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
