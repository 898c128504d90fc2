package httpapi

import (
	"context"
	"crypto/subtle"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier resolves a bearer token to the authenticated user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticTokens is a fixed token → user id table, loaded from API_TOKENS.
type StaticTokens map[string]string

func (s StaticTokens) Verify(ctx context.Context, token string) (string, error) {
	for t, user := range s {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return user, nil
		}
	}
	return "", ErrInvalidToken
}
