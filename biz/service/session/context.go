package session

import (
	"context"

	"accountd/be/biz/model/domain"
)

type claimsKey struct{}

func WithClaims(ctx context.Context, claims domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims the credential check attached to ctx.
func ClaimsFromContext(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domain.Claims)
	if !ok || !claims.Valid() {
		return nil, false
	}
	return claims, true
}
