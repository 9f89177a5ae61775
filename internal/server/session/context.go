package session

import "context"

type contextKey string

// claimsKey carries the authenticated session claims in the request
// context.
const claimsKey contextKey = "session_claims"

// WithClaims returns a context carrying the session claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom extracts the session claims set by the auth middleware.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
