// Package auth resolves request identities against the hosted auth service
// and exposes the signup/signin pass-through used by the dashboard.
package auth

import (
	"context"
	"errors"
)

// Identity is an authenticated caller as resolved by the external auth
// service. Every record is owned by exactly one identity.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ErrUnauthenticated is returned whenever no identity could be resolved,
// regardless of the underlying cause (missing token, expired session,
// upstream failure). Callers always map it to an authorization failure.
var ErrUnauthenticated = errors.New("authentication required")

// SessionProvider resolves the identity behind an access token.
type SessionProvider interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*Identity, error)
}

// Session is the payload relayed back from the hosted auth service after a
// successful signup or password sign-in.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         *Identity `json:"user,omitempty"`
}
