package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/jobcard-management/internal/audit"
	"github.com/frahmantamala/jobcard-management/internal/auth"
	"github.com/go-chi/chi"
)

// AuditWriter persists one entry per successful mutating request.
type AuditWriter interface {
	Record(ctx context.Context, entry *audit.Entry) error
}

// AuditTrail wraps a handler so that a durable record of who did what to
// which entity is written after a successful mutating call. The inner
// handler runs first; the entry is only created for 2xx responses, so a
// recorded action has actually taken effect. A failed audit write is
// logged and never alters the response already produced.
type AuditTrail struct {
	recorder AuditWriter
	auth     SessionService
	logger   *slog.Logger
}

func NewAuditTrail(recorder AuditWriter, authService SessionService, logger *slog.Logger) *AuditTrail {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditTrail{recorder: recorder, auth: authService, logger: logger}
}

// RecordAudit returns a middleware parameterized by the entity-type label
// of the route it protects.
func (a *AuditTrail) RecordAudit(entityType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			ww := &auditResponseWriter{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(ww, r)

			status := ww.status()
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return
			}

			actor := a.resolveActor(r)
			if actor == nil {
				// Fail-closed: no entry without an authenticated actor.
				a.logger.Warn("audit trail: no authenticated actor for successful mutation, skipping entry",
					"entity_type", entityType,
					"method", r.Method,
					"path", r.URL.Path)
				return
			}

			entry := &audit.Entry{
				ActorID:    actor.ID,
				EntityType: entityType,
				EntityID:   extractEntityID(r, ww.body.Bytes()),
				Action:     r.Method,
			}

			if err := a.recorder.Record(r.Context(), entry); err != nil {
				// Already logged by the recorder; the business response stands.
				return
			}
		})
	}
}

func (a *AuditTrail) resolveActor(r *http.Request) *auth.User {
	if user, ok := auth.UserFromContext(r.Context()); ok && user != nil {
		return user
	}

	// Standalone use without an upstream guard: re-resolve from the token.
	token, found := auth.TokenFromRequest(r)
	if !found {
		return nil
	}
	user, err := a.auth.ResolveUser(token)
	if err != nil {
		return nil
	}
	return user
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// extractEntityID applies the fixed extraction contract: the `id` route
// parameter when present, otherwise the top-level `id` field of the JSON
// response body, otherwise empty.
func extractEntityID(r *http.Request, responseBody []byte) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}

	if len(responseBody) == 0 {
		return ""
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(responseBody, &payload); err != nil {
		return ""
	}
	raw, ok := payload["id"]
	if !ok {
		return ""
	}

	var numeric int64
	if err := json.Unmarshal(raw, &numeric); err == nil {
		return strconv.FormatInt(numeric, 10)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return ""
}

// auditResponseWriter captures status and body so the trail can decide
// success and extract the entity id without touching the real response.
type auditResponseWriter struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rw *auditResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *auditResponseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

func (rw *auditResponseWriter) status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}
