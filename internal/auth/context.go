package auth

import (
	"context"
	"safecity-service/internal/ports"
)

type ctxKey struct{}

func WithClaims(ctx context.Context, c ports.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFrom returns the authenticated caller, if any.
func ClaimsFrom(ctx context.Context) (ports.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(ports.Claims)
	return c, ok
}
