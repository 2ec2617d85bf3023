// Package identity resolves the authenticated user for each request.
// Authentication itself is an external concern; this package only verifies
// the presented token and threads the opaque subject id through the request
// context for storage path prefixing and ledger attribution.
package identity

import "context"

type contextKey struct{}

// WithUser returns a context carrying the given opaque user id.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// FromContext returns the opaque user id carried by ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKey{}).(string)
	return userID, ok && userID != ""
}
