// Package context carries per-request values between the delivery layer and
// the usecases: the request's correlation ID and a logger already tagged with it.
package context

import (
	"context"
	"log/slog"
)

// HeaderXRequestID is the HTTP header the correlation ID travels in.
const HeaderXRequestID = "X-Request-Id"

// scopeKey is unexported so other packages cannot collide with these values.
type scopeKey int

const (
	requestIDKey scopeKey = iota
	loggerKey
)

// WithRequestID tags the context with the request's correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the correlation ID, or the empty string when the context
// was never tagged (background work, tests).
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}

	return ""
}

// WithLogger attaches the request-scoped logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context carries none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
