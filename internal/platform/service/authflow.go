// Package service implements the application's use cases on top of the
// identity client, the store, and the auth event bus.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nimbuslabs/nimbus/internal/platform/authstate"
	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// ErrEmailTaken is surfaced by SignUp when the address is already registered,
// either at the identity provider or as an existing profile row.
var ErrEmailTaken = errors.New("service: email already registered")

// AuthState is a point-in-time snapshot of the auth context. Loading is true
// only until the initial session check completes.
type AuthState struct {
	Session *domain.Session
	Profile *domain.Profile
	Loading bool
}

// SignedIn reports whether a session is present. Note that a session can be
// present while Profile is still nil: a failed profile fetch leaves the
// previous (possibly anonymous) profile state in place.
func (s AuthState) SignedIn() bool {
	return s.Session != nil
}

// SignUpParams are the registration form fields. The profile row is written
// from these directly rather than derived from session metadata.
type SignUpParams struct {
	FirstName string
	LastName  string
	Company   string
	Email     string
	Password  string
}

// AuthFlow owns the process-wide auth context: the current session and its
// resolved profile. All state writes funnel through the event loop plus the
// snapshot mutex, so readers always observe a consistent pair.
type AuthFlow struct {
	identity identity.Client
	store    store.Store
	events   *authstate.Broadcaster
	logger   *slog.Logger

	mu      sync.RWMutex
	session *domain.Session
	profile *domain.Profile
	token   string
	loading bool

	loopCancel context.CancelFunc
	loopDone   chan struct{}
}

// NewAuthFlow wires the flow but does not start it; call Initialize.
func NewAuthFlow(idc identity.Client, st store.Store, events *authstate.Broadcaster, logger *slog.Logger) *AuthFlow {
	return &AuthFlow{
		identity: idc,
		store:    st,
		events:   events,
		logger:   logger,
		loading:  true,
	}
}

// Initialize starts the event loop and performs the initial session check
// against initialToken (empty means no persisted session). Failures during
// the check are logged and swallowed: the flow comes up anonymous rather than
// failing startup. The check and the first subscribed event may each resolve
// the profile; the second resolution is a no-op fetch.
func (f *AuthFlow) Initialize(ctx context.Context, initialToken string) {
	ch, unsubscribe := f.events.Subscribe()

	loopCtx, cancel := context.WithCancel(context.Background())
	f.loopCancel = cancel
	f.loopDone = make(chan struct{})
	go func() {
		defer close(f.loopDone)
		defer unsubscribe()
		f.run(loopCtx, ch)
	}()

	if initialToken != "" {
		session, err := f.identity.SessionFromToken(ctx, initialToken)
		if err != nil {
			slogx.FromContext(ctx).Warn("initial session check failed", "error", err)
		} else {
			f.setSession(&session, initialToken)
			if _, err := f.ResolveProfile(ctx, session); err != nil {
				slogx.FromContext(ctx).Warn("initial profile resolution failed", "error", err)
			}
		}
	}

	f.mu.Lock()
	f.loading = false
	f.mu.Unlock()
}

// Close stops the event loop and waits for it to drain.
func (f *AuthFlow) Close() {
	if f.loopCancel != nil {
		f.loopCancel()
		<-f.loopDone
	}
}

func (f *AuthFlow) run(ctx context.Context, ch <-chan domain.AuthEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			switch ev.Type {
			case domain.AuthEventSignedIn, domain.AuthEventTokenRefreshed:
				if ev.Session == nil {
					continue
				}
				f.setSession(ev.Session, f.Token())
				if _, err := f.ResolveProfile(ctx, *ev.Session); err != nil {
					f.logger.Warn("profile resolution failed",
						"user_id", ev.Session.Subject, "error", err)
				}
			case domain.AuthEventSignedOut:
				f.clear()
			}
		}
	}
}

// State returns the current auth context snapshot.
func (f *AuthFlow) State() AuthState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return AuthState{Session: f.session, Profile: f.profile, Loading: f.loading}
}

// Token returns the raw session token backing the current session, empty when
// signed out.
func (f *AuthFlow) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

// ResolveProfile maps a session onto its profile row, inserting a synthesized
// row the first time the subject is seen. The operation is idempotent: a
// second call for the same subject fetches the existing row and inserts
// nothing. On storage errors the profile state is left untouched, so a
// signed-in session without a resolved profile is an observable state.
func (f *AuthFlow) ResolveProfile(ctx context.Context, session domain.Session) (domain.Profile, error) {
	profile, err := f.store.Profiles().GetProfileByID(ctx, session.Subject)
	switch {
	case err == nil:
		f.setProfile(&profile)
		return profile, nil
	case errors.Is(err, store.ErrNotFound):
		// First sight of this subject: synthesize a row from the session.
	default:
		return domain.Profile{}, fmt.Errorf("fetch profile %s: %w", session.Subject, err)
	}

	created := domain.NewProfileFromSession(session)
	if err := f.store.Profiles().CreateProfile(ctx, created); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race with a concurrent resolution; read the winner.
			existing, getErr := f.store.Profiles().GetProfileByID(ctx, session.Subject)
			if getErr != nil {
				return domain.Profile{}, fmt.Errorf("fetch profile after conflict: %w", getErr)
			}
			f.setProfile(&existing)
			return existing, nil
		}
		return domain.Profile{}, fmt.Errorf("create profile %s: %w", session.Subject, err)
	}

	stored, err := f.store.Profiles().GetProfileByID(ctx, session.Subject)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch created profile: %w", err)
	}
	f.setProfile(&stored)
	return stored, nil
}

// Session verifies a raw session token against the identity provider.
func (f *AuthFlow) Session(ctx context.Context, token string) (domain.Session, error) {
	return f.identity.SessionFromToken(ctx, token)
}

// SignIn performs a credential sign-in. On success the session is installed
// immediately and a signed_in event is published; profile resolution happens
// through the event loop, not inline. Provider errors are returned unchanged.
//
// The returned result carries the token minted for this call. Callers
// answering a request must use it rather than Token(): the snapshot is
// process-wide and a concurrent sign-in may have overwritten it.
func (f *AuthFlow) SignIn(ctx context.Context, email, password string) (identity.SignInResult, error) {
	result, err := f.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return identity.SignInResult{}, err
	}

	f.setSession(&result.Session, result.AccessToken)
	f.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: &result.Session})
	return result, nil
}

// SignInWithOAuth returns the provider authorize URL to redirect the browser
// to. No state changes until the callback code is exchanged.
func (f *AuthFlow) SignInWithOAuth(provider, state, redirectTo string) (string, error) {
	return f.identity.OAuthAuthorizeURL(provider, state, redirectTo)
}

// CompleteOAuth redeems the authorization code delivered to the callback and
// installs the resulting session, mirroring SignIn. As with SignIn, the
// returned result is the caller's token.
func (f *AuthFlow) CompleteOAuth(ctx context.Context, provider, code string) (identity.SignInResult, error) {
	result, err := f.identity.ExchangeOAuthCode(ctx, provider, code)
	if err != nil {
		return identity.SignInResult{}, err
	}

	f.setSession(&result.Session, result.AccessToken)
	f.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: &result.Session})
	return result, nil
}

// SignUp registers a new account and writes its profile row directly from the
// form fields (not synthesized from session metadata), then reads it back.
// The insert and read-back share a transaction.
func (f *AuthFlow) SignUp(ctx context.Context, params SignUpParams) (identity.SignInResult, domain.Profile, error) {
	result, err := f.identity.SignUp(ctx, identity.SignUpParams{
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return identity.SignInResult{}, domain.Profile{}, fmt.Errorf("%w: %s", ErrEmailTaken, params.Email)
		}
		return identity.SignInResult{}, domain.Profile{}, err
	}

	name := params.FirstName
	if params.LastName != "" {
		name = params.FirstName + " " + params.LastName
	}

	var profile domain.Profile
	err = f.store.WithTx(ctx, func(tx store.Tx) error {
		row := domain.Profile{
			ID:        result.Session.Subject,
			Email:     params.Email,
			Name:      name,
			Username:  domain.EmailLocalPart(params.Email),
			FirstName: params.FirstName,
			LastName:  params.LastName,
			Company:   params.Company,
		}
		if err := tx.Profiles().CreateProfile(ctx, row); err != nil {
			return err
		}
		stored, err := tx.Profiles().GetProfileByID(ctx, result.Session.Subject)
		if err != nil {
			return err
		}
		profile = stored
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return identity.SignInResult{}, domain.Profile{}, fmt.Errorf("%w: %s", ErrEmailTaken, params.Email)
		}
		return identity.SignInResult{}, domain.Profile{}, fmt.Errorf("create profile for sign-up: %w", err)
	}

	f.setSession(&result.Session, result.AccessToken)
	f.setProfile(&profile)
	f.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: &result.Session})
	return result, profile, nil
}

// SignOut revokes the caller's token at the provider and clears the auth
// context unconditionally. A provider error is logged but does not keep the
// user signed in. The token comes from the request, not the snapshot: the
// snapshot may already hold a different caller's session.
func (f *AuthFlow) SignOut(ctx context.Context, token string) {
	if token != "" {
		if err := f.identity.SignOut(ctx, token); err != nil {
			slogx.FromContext(ctx).Warn("provider sign-out failed", "error", err)
		}
	}

	f.clear()
	f.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedOut})
}

func (f *AuthFlow) setSession(s *domain.Session, token string) {
	f.mu.Lock()
	f.session = s
	f.token = token
	f.mu.Unlock()
}

func (f *AuthFlow) setProfile(p *domain.Profile) {
	f.mu.Lock()
	f.profile = p
	f.mu.Unlock()
}

func (f *AuthFlow) clear() {
	f.mu.Lock()
	f.session = nil
	f.profile = nil
	f.token = ""
	f.mu.Unlock()
}
