package api

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

type keyType string

const (
	userIDKey keyType = "userID"
	claimsKey keyType = "claims"
)

// ctxWithIdentity stores the authenticated user's id and decoded
// claims on the request context.
func ctxWithIdentity(ctx context.Context, userID int, claims *auth.AccessClaims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetUserID retrieves the authenticated user's id from the context.
func ctxGetUserID(ctx context.Context) (int, error) {
	id, ok := ctx.Value(userIDKey).(int)
	if !ok {
		return 0, errs.ErrUnauthorized
	}
	return id, nil
}

// ctxGetClaims retrieves the decoded access claims from the context.
func ctxGetClaims(ctx context.Context) (*auth.AccessClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*auth.AccessClaims)
	if !ok || claims == nil {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}
