package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// With returns a context carrying a logger enriched with fields. Fields
// accumulate across nested calls, so middleware can attach the trace id
// once and handlers inherit it.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, contextKey{}, From(ctx).With(fields...))
}

// From returns the request-scoped logger, or the process logger when the
// context has none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
