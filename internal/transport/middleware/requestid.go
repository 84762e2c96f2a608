package middleware

import (
	"net/http"

	"github.com/frahmantamala/jobcard-management/pkg/logger"
	"github.com/google/uuid"
)

// TraceIDHeader carries the request correlation id across services.
const TraceIDHeader = "X-Trace-ID"

// RequestID assigns every request a trace id, honoring one supplied by the
// caller. The id is attached to the context logger and echoed back so a
// client can quote it when reporting a problem.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set(TraceIDHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
