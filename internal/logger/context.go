package logger

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	metaKey ctxKey = iota
	loggerKey
)

// requestMeta is the per-request identity carried through ctx
type requestMeta struct {
	requestID string
	userID    string
}

func metaFrom(ctx context.Context) requestMeta {
	m, _ := ctx.Value(metaKey).(requestMeta)
	return m
}

// WithRequestID stores the request id in ctx, generating one when empty
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	m := metaFrom(ctx)
	m.requestID = requestID
	return context.WithValue(ctx, metaKey, m)
}

func RequestIDFromContext(ctx context.Context) string {
	return metaFrom(ctx).requestID
}

// WithUserID stores the authenticated user id in ctx
func WithUserID(ctx context.Context, userID string) context.Context {
	m := metaFrom(ctx)
	m.userID = userID
	return context.WithValue(ctx, metaKey, m)
}

func UserIDFromContext(ctx context.Context) string {
	return metaFrom(ctx).userID
}

// WithLogger attaches l to ctx
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger attached to ctx, or Default()
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

func extractContextFields(ctx context.Context) []Field {
	m := metaFrom(ctx)
	fields := make([]Field, 0, 2)
	if m.requestID != "" {
		fields = append(fields, String("request_id", m.requestID))
	}
	if m.userID != "" {
		fields = append(fields, String("user_id", m.userID))
	}
	return fields
}

// Ctx is FromContext(ctx).WithContext(ctx)
func Ctx(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
