// ABOUTME: Request context propagation for the authenticated user id
// ABOUTME: Provides WithUser/UserFromContext used by middleware and handlers

package auth

import "context"

// userContextKey is the key type for storing the user id in context.Context.
type userContextKey struct{}

// WithUser returns a new context with the authenticated user id attached.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey{}, userID)
}

// UserFromContext retrieves the authenticated user id from the context,
// returning "" if no identity was resolved.
func UserFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userContextKey{}).(string)
	return userID
}

// MustUserFromContext retrieves the authenticated user id, panicking if the
// request did not pass through the auth middleware. Handlers registered
// behind Middleware may rely on it.
func MustUserFromContext(ctx context.Context) string {
	userID := UserFromContext(ctx)
	if userID == "" {
		panic("auth: user id not found in context")
	}
	return userID
}
