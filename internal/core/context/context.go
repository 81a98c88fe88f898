// Package appcontext carries request-scoped values through the call chain.
package appcontext

import "context"

type ctxKey string

const (
	traceIDKey ctxKey = "trace_id"
	userIDKey  ctxKey = "user_id"
	userKey    ctxKey = "user_name"
)

// WithTraceID attaches a trace identifier to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID returns the trace identifier or "" if absent.
func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithUser attaches the authenticated user's id and display name.
func WithUser(ctx context.Context, id, name string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userKey, name)
}

// UserID returns the authenticated user id or "" if absent.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// UserName returns the authenticated user display name or "" if absent.
func UserName(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}
