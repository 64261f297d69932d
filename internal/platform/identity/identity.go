// Package identity wraps the external identity/data vendor behind a Client
// interface. Two implementations exist: a hosted vendor HTTP client, and a
// self-contained local provider used when no vendor is configured (the
// development fallback).
package identity

import (
	"context"
	"errors"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

var (
	// ErrNotConfigured is returned by every operation when the identity
	// service has no usable configuration.
	ErrNotConfigured = errors.New("identity: not configured")

	// ErrInvalidCredentials covers bad email/password pairs and unknown
	// accounts; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrEmailTaken is returned by SignUp for an already-registered email.
	ErrEmailTaken = errors.New("identity: email already registered")

	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("identity: invalid session token")

	// ErrUnsupportedProvider is returned for OAuth providers the client
	// does not know.
	ErrUnsupportedProvider = errors.New("identity: unsupported oauth provider")
)

// SignInResult carries the session token minted by the provider together
// with the parsed session it proves.
type SignInResult struct {
	AccessToken string
	Session     domain.Session
}

// SignUpParams are the registration fields collected by the sign-up form.
type SignUpParams struct {
	Email    string
	Password string
}

// Client is the identity vendor boundary. All calls are blocking,
// context-aware, and fail without retrying; the auth flow above decides what
// a failure means.
type Client interface {
	// SessionFromToken resolves a raw session token to a Session, verifying
	// it against the provider's signing secret.
	SessionFromToken(ctx context.Context, token string) (domain.Session, error)

	// SignInWithPassword performs a credential sign-in.
	SignInWithPassword(ctx context.Context, email, password string) (SignInResult, error)

	// SignUp creates a new credential identity and signs it in.
	SignUp(ctx context.Context, params SignUpParams) (SignInResult, error)

	// SignOut invalidates the provider session, if the provider tracks one.
	SignOut(ctx context.Context, token string) error

	// OAuthAuthorizeURL returns the URL the browser should be redirected to
	// for an OAuth sign-in with the given provider.
	OAuthAuthorizeURL(provider, state, redirectTo string) (string, error)

	// ExchangeOAuthCode redeems the authorization code delivered to the
	// callback for a signed-in session.
	ExchangeOAuthCode(ctx context.Context, provider, code string) (SignInResult, error)
}
