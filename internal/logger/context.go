package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	cartSessionKey ctxKey = "cart_session"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func WithCartSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, cartSessionKey, session)
}

func CartSessionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(cartSessionKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger with request_id and cart_session added
// when they are present in ctx.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if session := CartSessionFrom(ctx); session != "" {
		l = l.With(zap.String("cart_session", session))
	}
	return l
}
