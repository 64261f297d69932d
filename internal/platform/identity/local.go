package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
	"github.com/nimbuslabs/nimbus/pkg/cryptox"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// LocalConfig configures the built-in identity provider used when no hosted
// vendor is set up.
type LocalConfig struct {
	// JWTSecret signs the locally minted HS256 session tokens.
	JWTSecret string
	// Issuer is the iss claim for minted tokens.
	Issuer string
	// SessionTTL bounds minted sessions; zero means 1h.
	SessionTTL time.Duration

	// Google OAuth settings; empty means OAuth sign-in is unavailable.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Overridable in tests.
	GoogleAuthURL     string
	GoogleTokenURL    string
	GoogleUserInfoURL string
}

// localClient is a self-contained identity provider backed by the
// application store: argon2id credentials and locally minted session tokens.
// It stands in for the hosted vendor the same way the original swapped in a
// stub client when the vendor env vars were absent, except this one works.
type localClient struct {
	cfg    LocalConfig
	store  store.Store
	ttl    time.Duration
	google *oauth2.Config
	http   *http.Client
}

// NewLocalClient builds the local implementation of Client.
func NewLocalClient(cfg LocalConfig, st store.Store) Client {
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = time.Hour
	}

	var gcfg *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		endpoint := google.Endpoint
		if cfg.GoogleAuthURL != "" && cfg.GoogleTokenURL != "" {
			endpoint = oauth2.Endpoint{AuthURL: cfg.GoogleAuthURL, TokenURL: cfg.GoogleTokenURL}
		}
		gcfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoint,
		}
	}
	if cfg.GoogleUserInfoURL == "" {
		cfg.GoogleUserInfoURL = defaultGoogleUserInfoURL
	}

	return &localClient{
		cfg:    cfg,
		store:  st,
		ttl:    ttl,
		google: gcfg,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *localClient) SessionFromToken(ctx context.Context, token string) (domain.Session, error) {
	if c.cfg.JWTSecret == "" {
		return domain.Session{}, ErrNotConfigured
	}
	return ParseSessionToken([]byte(c.cfg.JWTSecret), token)
}

func (c *localClient) SignInWithPassword(ctx context.Context, email, password string) (SignInResult, error) {
	if c.cfg.JWTSecret == "" {
		return SignInResult{}, ErrNotConfigured
	}

	ident, err := c.store.Identities().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	if ident.PasswordHash == "" {
		// OAuth-only identity; no password to check.
		return SignInResult{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, ident.PasswordHash); err != nil {
		return SignInResult{}, ErrInvalidCredentials
	}

	return c.mint(domain.Session{
		Subject:  ident.ID,
		Email:    ident.Email,
		Provider: ident.Provider,
	})
}

func (c *localClient) SignUp(ctx context.Context, params SignUpParams) (SignInResult, error) {
	if c.cfg.JWTSecret == "" {
		return SignInResult{}, ErrNotConfigured
	}

	hash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return SignInResult{}, err
	}

	ident := domain.Identity{
		ID:           idx.New().String(),
		Email:        params.Email,
		PasswordHash: hash,
		Provider:     "email",
	}
	if err := c.store.Identities().CreateIdentity(ctx, ident); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return SignInResult{}, ErrEmailTaken
		}
		return SignInResult{}, err
	}

	return c.mint(domain.Session{
		Subject:  ident.ID,
		Email:    ident.Email,
		Provider: ident.Provider,
	})
}

// SignOut is a no-op for the local provider: sessions are stateless tokens
// and simply expire.
func (c *localClient) SignOut(ctx context.Context, token string) error {
	return nil
}

func (c *localClient) OAuthAuthorizeURL(provider, state, redirectTo string) (string, error) {
	if provider != "google" {
		return "", ErrUnsupportedProvider
	}
	if c.google == nil {
		return "", ErrNotConfigured
	}
	// The local provider always calls back to its configured redirect URL;
	// redirectTo is honoured after the callback, not here.
	return c.google.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (c *localClient) ExchangeOAuthCode(ctx context.Context, provider, code string) (SignInResult, error) {
	if provider != "google" {
		return SignInResult{}, ErrUnsupportedProvider
	}
	if c.google == nil || c.cfg.JWTSecret == "" {
		return SignInResult{}, ErrNotConfigured
	}

	token, err := c.google.Exchange(ctx, code)
	if err != nil {
		return SignInResult{}, fmt.Errorf("identity: oauth exchange: %w", err)
	}

	info, err := c.fetchGoogleUser(ctx, token)
	if err != nil {
		return SignInResult{}, err
	}

	ident, err := c.store.Identities().GetIdentityByEmail(ctx, info.Email)
	if errors.Is(err, store.ErrNotFound) {
		ident = domain.Identity{
			ID:       idx.New().String(),
			Email:    info.Email,
			Provider: "google",
		}
		if err := c.store.Identities().CreateIdentity(ctx, ident); err != nil {
			return SignInResult{}, err
		}
	} else if err != nil {
		return SignInResult{}, err
	}

	return c.mint(domain.Session{
		Subject:  ident.ID,
		Email:    ident.Email,
		Provider: "google",
		FullName: info.Name,
	})
}

type googleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (c *localClient) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.GoogleUserInfoURL, nil)
	if err != nil {
		return googleUser{}, err
	}
	token.SetAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return googleUser{}, fmt.Errorf("identity: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return googleUser{}, fmt.Errorf("identity: userinfo request failed: %s", resp.Status)
	}

	var user googleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return googleUser{}, fmt.Errorf("identity: decode userinfo: %w", err)
	}
	if user.Email == "" {
		return googleUser{}, errors.New("identity: google profile missing email")
	}
	return user, nil
}

func (c *localClient) mint(s domain.Session) (SignInResult, error) {
	token, err := MintSessionToken([]byte(c.cfg.JWTSecret), c.cfg.Issuer, s, c.ttl)
	if err != nil {
		return SignInResult{}, err
	}

	parsed, err := ParseSessionToken([]byte(c.cfg.JWTSecret), token)
	if err != nil {
		return SignInResult{}, err
	}
	return SignInResult{AccessToken: token, Session: parsed}, nil
}
