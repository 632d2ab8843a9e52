package auth

import "context"

type contextKey string

const UsernameKey contextKey = "username"

// WithUsername injects the authenticated identity into the request context
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username) //to avoid collisions - use custom key type
}

// GetUsername retrieves the authenticated identity from the request context
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
