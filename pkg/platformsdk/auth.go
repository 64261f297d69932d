package platformsdk

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoSession is returned by SignUp/SignIn when the server response carried
// no access token.
var ErrNoSession = errors.New("platformsdk: response carried no session")

// SignUp registers an account and returns an authenticated session.
func (c *SDKClient) SignUp(ctx context.Context, req SignUpRequest) (*Session, *AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/signup", "", req, &resp, http.StatusCreated); err != nil {
		return nil, nil, err
	}
	if resp.AccessToken == "" {
		return nil, nil, ErrNoSession
	}
	return &Session{client: c, token: resp.AccessToken}, &resp, nil
}

// SignIn performs a credential sign-in and returns an authenticated session.
func (c *SDKClient) SignIn(ctx context.Context, email, password string) (*Session, *AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/signin", "", body, &resp, http.StatusOK); err != nil {
		return nil, nil, err
	}
	if resp.AccessToken == "" {
		return nil, nil, ErrNoSession
	}
	return &Session{client: c, token: resp.AccessToken}, &resp, nil
}

// CurrentAuth resolves the caller's token to its session and profile. With no
// or an invalid token the returned Session field is nil rather than an error.
func (c *SDKClient) CurrentAuth(ctx context.Context, token string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/session", token, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentAuth resolves the session's token to its state on the server.
func (s *Session) CurrentAuth(ctx context.Context) (*AuthResponse, error) {
	return s.client.CurrentAuth(ctx, s.token)
}

// SignOut signs the session out.
func (s *Session) SignOut(ctx context.Context) error {
	return s.client.doJSON(ctx, http.MethodPost, "/v1/auth/signout", s.token, nil, nil, http.StatusNoContent)
}
