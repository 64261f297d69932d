package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/authstate"
	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
	"github.com/nimbuslabs/nimbus/internal/platform/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// fakeIdentity is a programmable identity.Client for flow tests.
type fakeIdentity struct {
	sessionFromToken func(token string) (domain.Session, error)
	signIn           func(email, password string) (identity.SignInResult, error)
	signUp           func(params identity.SignUpParams) (identity.SignInResult, error)
	signOutErr error

	signedOutTokens []string
}

func (f *fakeIdentity) SessionFromToken(_ context.Context, token string) (domain.Session, error) {
	if f.sessionFromToken == nil {
		return domain.Session{}, identity.ErrInvalidToken
	}
	return f.sessionFromToken(token)
}

func (f *fakeIdentity) SignInWithPassword(_ context.Context, email, password string) (identity.SignInResult, error) {
	if f.signIn == nil {
		return identity.SignInResult{}, identity.ErrInvalidCredentials
	}
	return f.signIn(email, password)
}

func (f *fakeIdentity) SignUp(_ context.Context, params identity.SignUpParams) (identity.SignInResult, error) {
	if f.signUp == nil {
		return identity.SignInResult{}, identity.ErrNotConfigured
	}
	return f.signUp(params)
}

func (f *fakeIdentity) SignOut(_ context.Context, token string) error {
	f.signedOutTokens = append(f.signedOutTokens, token)
	return f.signOutErr
}

func (f *fakeIdentity) OAuthAuthorizeURL(provider, state, redirectTo string) (string, error) {
	return "https://auth.example.com/authorize?provider=" + provider + "&state=" + state, nil
}

func (f *fakeIdentity) ExchangeOAuthCode(context.Context, string, string) (identity.SignInResult, error) {
	return identity.SignInResult{}, identity.ErrNotConfigured
}

// countingStore wraps a real store and counts profile inserts.
type countingStore struct {
	store.Store
	profiles *countingProfiles
}

type countingProfiles struct {
	store.Profiles
	creates atomic.Int64
}

func (p *countingProfiles) CreateProfile(ctx context.Context, prof domain.Profile) error {
	p.creates.Add(1)
	return p.Profiles.CreateProfile(ctx, prof)
}

func (s *countingStore) Profiles() store.Profiles { return s.profiles }

func newCountingStore(t *testing.T) *countingStore {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &countingStore{
		Store:    st,
		profiles: &countingProfiles{Profiles: st.Profiles()},
	}
}

func newFlow(t *testing.T, idc identity.Client, st store.Store) *AuthFlow {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	flow := NewAuthFlow(idc, st, authstate.NewBroadcaster(), logger)
	t.Cleanup(flow.Close)
	return flow
}

func TestResolveProfileInsertsOnFirstSight(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)
	flow := newFlow(t, &fakeIdentity{}, st)

	session := domain.Session{Subject: "u1", Email: "alice@example.com", Provider: "email"}

	profile, err := flow.ResolveProfile(ctx, session)
	require.NoError(t, err)
	require.Equal(t, "u1", profile.ID)
	require.Equal(t, "alice@example.com", profile.Email)
	require.Equal(t, "alice", profile.Name)
	require.Equal(t, "alice", profile.Username)
	require.Empty(t, profile.FirstName)
	require.Empty(t, profile.LastName)
	require.EqualValues(t, 1, st.profiles.creates.Load())

	// Resolving the same subject again fetches, never re-inserts.
	again, err := flow.ResolveProfile(ctx, session)
	require.NoError(t, err)
	require.Equal(t, profile.ID, again.ID)
	require.EqualValues(t, 1, st.profiles.creates.Load())
}

func TestResolveProfileUsesFullName(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)
	flow := newFlow(t, &fakeIdentity{}, st)

	profile, err := flow.ResolveProfile(ctx, domain.Session{
		Subject:  "u2",
		Email:    "carol@example.com",
		Provider: "google",
		FullName: "Carol D Example",
	})
	require.NoError(t, err)
	require.Equal(t, "Carol D Example", profile.Name)
	require.Equal(t, "Carol", profile.FirstName)
	require.Equal(t, "D Example", profile.LastName)
	require.Equal(t, "carol", profile.Username)
}

func TestResolveProfileStorageErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)
	flow := newFlow(t, &fakeIdentity{}, st)

	closed := newCountingStore(t)
	require.NoError(t, closed.Store.Close())
	flow.store = closed

	session := domain.Session{Subject: "u3", Email: "dave@example.com"}
	flow.setSession(&session, "token")

	_, err := flow.ResolveProfile(ctx, session)
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)

	// The session survives but the profile was never resolved.
	state := flow.State()
	require.True(t, state.SignedIn())
	require.Nil(t, state.Profile)
}

func TestSignInResolvesThroughEventLoop(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	session := domain.Session{Subject: "u1", Email: "alice@example.com", Provider: "email"}
	idc := &fakeIdentity{
		signIn: func(email, password string) (identity.SignInResult, error) {
			if password != "hunter2hunter2" {
				return identity.SignInResult{}, identity.ErrInvalidCredentials
			}
			return identity.SignInResult{AccessToken: "tok-1", Session: session}, nil
		},
	}
	flow := newFlow(t, idc, st)
	flow.Initialize(ctx, "")

	_, err := flow.SignIn(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, identity.ErrInvalidCredentials)
	require.False(t, flow.State().SignedIn())

	got, err := flow.SignIn(ctx, "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "u1", got.Session.Subject)
	require.Equal(t, "tok-1", got.AccessToken)

	require.Eventually(t, func() bool {
		return flow.State().Profile != nil
	}, 2*time.Second, 10*time.Millisecond)

	state := flow.State()
	require.Equal(t, "alice", state.Profile.Name)
	require.EqualValues(t, 1, st.profiles.creates.Load())
}

func TestSignOutClearsUnconditionally(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	idc := &fakeIdentity{
		signIn: func(email, password string) (identity.SignInResult, error) {
			return identity.SignInResult{
				AccessToken: "tok-1",
				Session:     domain.Session{Subject: "u1", Email: email},
			}, nil
		},
		signOutErr: errors.New("provider unavailable"),
	}
	flow := newFlow(t, idc, st)
	flow.Initialize(ctx, "")

	_, err := flow.SignIn(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	require.True(t, flow.State().SignedIn())

	// Even with the provider failing, the local context is cleared.
	flow.SignOut(ctx, "tok-1")
	require.Eventually(t, func() bool {
		state := flow.State()
		return !state.SignedIn() && state.Profile == nil
	}, 2*time.Second, 10*time.Millisecond)
	require.Empty(t, flow.Token())
}

func TestSignInResultIsPerCallNotShared(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	idc := &fakeIdentity{
		signIn: func(email, password string) (identity.SignInResult, error) {
			return identity.SignInResult{
				AccessToken: "tok-" + email,
				Session:     domain.Session{Subject: "sub-" + email, Email: email},
			}, nil
		},
	}
	flow := newFlow(t, idc, st)
	flow.Initialize(ctx, "")

	alice, err := flow.SignIn(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	// A second sign-in replaces the process-wide snapshot before the first
	// caller has used its result.
	bob, err := flow.SignIn(ctx, "bob@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-bob@example.com", flow.Token())

	// Each result still carries the token and session minted for its own
	// call; answering a request from the snapshot instead would hand the
	// first caller the second caller's session.
	require.Equal(t, "tok-alice@example.com", alice.AccessToken)
	require.Equal(t, "sub-alice@example.com", alice.Session.Subject)
	require.Equal(t, "tok-bob@example.com", bob.AccessToken)
	require.Equal(t, "sub-bob@example.com", bob.Session.Subject)
}

func TestSignOutRevokesCallerToken(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	idc := &fakeIdentity{
		signIn: func(email, password string) (identity.SignInResult, error) {
			return identity.SignInResult{
				AccessToken: "tok-" + email,
				Session:     domain.Session{Subject: "sub-" + email, Email: email},
			}, nil
		},
	}
	flow := newFlow(t, idc, st)
	flow.Initialize(ctx, "")

	alice, err := flow.SignIn(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	_, err = flow.SignIn(ctx, "bob@example.com", "pw")
	require.NoError(t, err)

	// The snapshot now holds bob's token, but alice signing out must revoke
	// her own token at the provider.
	flow.SignOut(ctx, alice.AccessToken)
	require.Equal(t, []string{"tok-alice@example.com"}, idc.signedOutTokens)
}

func TestInitializeSwallowsSessionFailure(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	idc := &fakeIdentity{
		sessionFromToken: func(string) (domain.Session, error) {
			return domain.Session{}, errors.New("provider down")
		},
	}
	flow := newFlow(t, idc, st)

	flow.Initialize(ctx, "some-persisted-token")

	state := flow.State()
	require.False(t, state.Loading)
	require.False(t, state.SignedIn())
	require.Nil(t, state.Profile)
	require.EqualValues(t, 0, st.profiles.creates.Load())
}

func TestInitializeResolvesPersistedSession(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	session := domain.Session{Subject: "u1", Email: "alice@example.com"}
	idc := &fakeIdentity{
		sessionFromToken: func(token string) (domain.Session, error) {
			require.Equal(t, "persisted-token", token)
			return session, nil
		},
	}
	flow := newFlow(t, idc, st)

	flow.Initialize(ctx, "persisted-token")

	state := flow.State()
	require.False(t, state.Loading)
	require.True(t, state.SignedIn())
	require.NotNil(t, state.Profile)
	require.Equal(t, "alice", state.Profile.Name)
	require.Equal(t, "persisted-token", flow.Token())
}

func TestSignUpWritesFormProfile(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	idc := &fakeIdentity{
		signUp: func(params identity.SignUpParams) (identity.SignInResult, error) {
			return identity.SignInResult{
				AccessToken: "tok-9",
				Session:     domain.Session{Subject: "u9", Email: params.Email},
			}, nil
		},
	}
	flow := newFlow(t, idc, st)
	flow.Initialize(ctx, "")

	_, profile, err := flow.SignUp(ctx, SignUpParams{
		FirstName: "Bob",
		LastName:  "Builder",
		Company:   "Acme",
		Email:     "bob@example.com",
		Password:  "hunter2hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "u9", profile.ID)
	require.Equal(t, "Bob Builder", profile.Name)
	require.Equal(t, "Bob", profile.FirstName)
	require.Equal(t, "Builder", profile.LastName)
	require.Equal(t, "Acme", profile.Company)
	require.Equal(t, "bob", profile.Username)
	require.True(t, flow.State().SignedIn())
}

func TestSignUpEmailTaken(t *testing.T) {
	ctx := context.Background()
	st := newCountingStore(t)

	idc := &fakeIdentity{
		signUp: func(identity.SignUpParams) (identity.SignInResult, error) {
			return identity.SignInResult{}, identity.ErrEmailTaken
		},
	}
	flow := newFlow(t, idc, st)

	_, _, err := flow.SignUp(ctx, SignUpParams{Email: "taken@example.com", Password: "pw"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.False(t, flow.State().SignedIn())
}

func TestSignInWithOAuthReturnsRedirect(t *testing.T) {
	st := newCountingStore(t)
	flow := newFlow(t, &fakeIdentity{}, st)

	u, err := flow.SignInWithOAuth("google", "state-1", "")
	require.NoError(t, err)
	require.Contains(t, u, "provider=google")
	require.False(t, flow.State().SignedIn())
}
