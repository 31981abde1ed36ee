package utils

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	UserRoleKey  contextKey = "role"
	UserNameKey  contextKey = "name"
)

const internalRequestKey contextKey = "internal_request"

// WithInternalRequest marks a context as originating from a trusted job
// (the pending-order sweep) rather than an end user.
func WithInternalRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, internalRequestKey, true)
}

func IsInternalRequest(ctx context.Context) bool {
	v, _ := ctx.Value(internalRequestKey).(bool)
	return v
}
