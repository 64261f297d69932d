package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

// VendorConfig configures the hosted identity vendor client.
type VendorConfig struct {
	// BaseURL is the vendor's auth API root, e.g. https://x.example.co/auth/v1.
	BaseURL string
	// APIKey is sent on every request as the vendor's apikey header.
	APIKey string
	// JWTSecret is the shared HS256 secret the vendor signs sessions with.
	JWTSecret string
	// Timeout bounds each request; zero means 10s.
	Timeout time.Duration
}

// Configured reports whether the vendor settings are usable. Mirrors the
// original client, which swaps in a non-functional stub when env vars are
// missing.
func (c VendorConfig) Configured() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.JWTSecret != ""
}

// vendorClient talks to a hosted identity service over HTTP. The vendor owns
// credentials, OAuth brokering, and session minting; this client only
// forwards requests and verifies the returned session tokens.
type vendorClient struct {
	cfg  VendorConfig
	http *http.Client
}

// NewVendorClient builds the hosted-vendor implementation of Client.
func NewVendorClient(cfg VendorConfig) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &vendorClient{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

type vendorTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type vendorErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Message     string `json:"msg"`
}

func (c *vendorClient) SessionFromToken(ctx context.Context, token string) (domain.Session, error) {
	if !c.cfg.Configured() {
		return domain.Session{}, ErrNotConfigured
	}
	return ParseSessionToken([]byte(c.cfg.JWTSecret), token)
}

func (c *vendorClient) SignInWithPassword(ctx context.Context, email, password string) (SignInResult, error) {
	if !c.cfg.Configured() {
		return SignInResult{}, ErrNotConfigured
	}

	body := map[string]string{"email": email, "password": password}
	resp, err := c.post(ctx, "/token?grant_type=password", body, "")
	if err != nil {
		return SignInResult{}, err
	}
	return c.resultFromToken(resp.AccessToken)
}

func (c *vendorClient) SignUp(ctx context.Context, params SignUpParams) (SignInResult, error) {
	if !c.cfg.Configured() {
		return SignInResult{}, ErrNotConfigured
	}

	body := map[string]string{"email": params.Email, "password": params.Password}
	resp, err := c.post(ctx, "/signup", body, "")
	if err != nil {
		return SignInResult{}, err
	}
	return c.resultFromToken(resp.AccessToken)
}

func (c *vendorClient) SignOut(ctx context.Context, token string) error {
	if !c.cfg.Configured() {
		return ErrNotConfigured
	}

	_, err := c.post(ctx, "/logout", nil, token)
	return err
}

func (c *vendorClient) OAuthAuthorizeURL(provider, state, redirectTo string) (string, error) {
	if !c.cfg.Configured() {
		return "", ErrNotConfigured
	}

	// The vendor hosts the provider handshake; we only hand the browser off.
	q := url.Values{
		"provider":    {provider},
		"state":       {state},
		"redirect_to": {redirectTo},
	}
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/authorize?" + q.Encode(), nil
}

func (c *vendorClient) ExchangeOAuthCode(ctx context.Context, provider, code string) (SignInResult, error) {
	if !c.cfg.Configured() {
		return SignInResult{}, ErrNotConfigured
	}

	body := map[string]string{"auth_code": code}
	resp, err := c.post(ctx, "/token?grant_type=authorization_code", body, "")
	if err != nil {
		return SignInResult{}, err
	}
	return c.resultFromToken(resp.AccessToken)
}

func (c *vendorClient) resultFromToken(token string) (SignInResult, error) {
	session, err := ParseSessionToken([]byte(c.cfg.JWTSecret), token)
	if err != nil {
		return SignInResult{}, err
	}
	return SignInResult{AccessToken: token, Session: session}, nil
}

func (c *vendorClient) post(ctx context.Context, path string, body any, bearer string) (vendorTokenResponse, error) {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return vendorTokenResponse{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(c.cfg.BaseURL, "/")+path, &payload)
	if err != nil {
		return vendorTokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.cfg.APIKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return vendorTokenResponse{}, fmt.Errorf("identity: vendor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return vendorTokenResponse{}, mapVendorError(resp.StatusCode, resp.Body)
	}

	var out vendorTokenResponse
	if resp.StatusCode == http.StatusNoContent {
		return out, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return vendorTokenResponse{}, fmt.Errorf("identity: decode vendor response: %w", err)
	}
	return out, nil
}

func mapVendorError(status int, body io.Reader) error {
	var ve vendorErrorResponse
	_ = json.NewDecoder(body).Decode(&ve)

	msg := ve.Description
	if msg == "" {
		msg = ve.Message
	}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	case status == http.StatusUnprocessableEntity,
		strings.Contains(strings.ToLower(msg), "already registered"):
		return fmt.Errorf("%w: %s", ErrEmailTaken, msg)
	default:
		return fmt.Errorf("identity: vendor returned %d: %s", status, msg)
	}
}
