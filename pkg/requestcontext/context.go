// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the values, services read them:
//
//	user := requestcontext.User(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject them directly:
//
//	ctx = requestcontext.WithUser(ctx, "ano@ssb.no", []string{"dapla-felles-developers"})
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type (
	userKey        struct{}
	groupsKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeyUser        = userKey{}
	ContextKeyGroups      = groupsKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// User returns the authenticated caller used for createdBy / lastUpdatedBy stamps.
func User(ctx context.Context) string {
	if user, ok := ctx.Value(ContextKeyUser).(string); ok {
		return user
	}
	return ""
}

// Groups returns the caller's group memberships from the token.
func Groups(ctx context.Context) []string {
	if groups, ok := ctx.Value(ContextKeyGroups).([]string); ok {
		return groups
	}
	return nil
}

// HasGroup reports whether the caller is a member of group.
func HasGroup(ctx context.Context, group string) bool {
	for _, g := range Groups(ctx) {
		if g == group {
			return true
		}
	}
	return false
}

// WithUser injects the caller identity and groups.
func WithUser(ctx context.Context, user string, groups []string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUser, user)
	return context.WithValue(ctx, ContextKeyGroups, groups)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for workers, scheduled jobs and tests that don't set it.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
