package jwt

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

var ErrMissingUserClaim = errors.New("user_id claim is missing or invalid")

// UserIDFromContext extracts the user_id claim placed in ctx by jwtauth.Verifier.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrMissingUserClaim
	}
	return userID, nil
}

// ContextWithAccessToken decodes tokenString and stores it in ctx the way
// jwtauth.Verifier does. Used by the CLI and tests.
func ContextWithAccessToken(ctx context.Context, ja *jwtauth.JWTAuth, tokenString string) (context.Context, error) {
	token, err := jwtauth.VerifyToken(ja, tokenString)
	if err != nil {
		return ctx, err
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}
