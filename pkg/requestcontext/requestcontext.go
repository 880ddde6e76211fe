// Package requestcontext carries request-scoped values (time, ids, client
// metadata, authenticated user) through context.Context.
package requestcontext

import (
	"context"
	"time"

	id "leetcoach/pkg/domain"
)

type (
	contextKeyRequestTime struct{}
	contextKeyRequestID   struct{}
	contextKeyClientIP    struct{}
	contextKeyUserAgent   struct{}
	contextKeyUserID      struct{}
	contextKeyUsername    struct{}
)

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyRequestID{}).(string)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, requestID)
}

// ClientIP returns the resolved client address, which is also the abuse
// accounting key for unauthenticated traffic.
func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyClientIP{}).(string)
	return v
}

func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyUserAgent{}).(string)
	return v
}

// WithClientMetadata stores the client address and user agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, clientIP)
	return context.WithValue(ctx, contextKeyUserAgent{}, userAgent)
}

// UserID returns the authenticated user, if any.
func UserID(ctx context.Context) (id.UserID, bool) {
	v, ok := ctx.Value(contextKeyUserID{}).(id.UserID)
	return v, ok
}

func Username(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyUsername{}).(string)
	return v
}

// WithUser stores the authenticated principal.
func WithUser(ctx context.Context, userID id.UserID, username string) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID{}, userID)
	return context.WithValue(ctx, contextKeyUsername{}, username)
}
