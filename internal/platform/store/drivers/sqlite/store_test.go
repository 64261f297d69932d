package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestProfilesCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := domain.Profile{
		ID:        "u1",
		Email:     "alice@example.com",
		Name:      "alice",
		Username:  "alice",
		FirstName: "Alice",
		Company:   "Example Inc",
	}
	require.NoError(t, s.Profiles().CreateProfile(ctx, p))

	got, err := s.Profiles().GetProfileByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "alice", got.Name)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "Alice", got.FirstName)
	require.Empty(t, got.LastName)
	require.Equal(t, "Example Inc", got.Company)
	require.False(t, got.CreatedAt.IsZero())
}

func TestProfilesGetNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Profiles().GetProfileByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfilesDuplicateIDConflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := domain.Profile{ID: "u1", Email: "a@example.com", Name: "a"}
	require.NoError(t, s.Profiles().CreateProfile(ctx, p))
	require.ErrorIs(t, s.Profiles().CreateProfile(ctx, p), store.ErrAlreadyExists)
}

func TestProfilesDuplicateUsernameConflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Profiles().CreateProfile(ctx, domain.Profile{
		ID: "u1", Email: "a@example.com", Name: "a", Username: "taken",
	}))
	err := s.Profiles().CreateProfile(ctx, domain.Profile{
		ID: "u2", Email: "b@example.com", Name: "b", Username: "taken",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Empty usernames are stored as NULL and never collide.
	require.NoError(t, s.Profiles().CreateProfile(ctx, domain.Profile{
		ID: "u3", Email: "c@example.com", Name: "c",
	}))
	require.NoError(t, s.Profiles().CreateProfile(ctx, domain.Profile{
		ID: "u4", Email: "d@example.com", Name: "d",
	}))
}

func TestSubscriptionsNewestWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Profiles().CreateProfile(ctx, domain.Profile{
		ID: "u1", Email: "a@example.com", Name: "a",
	}))

	_, err := s.Subscriptions().GetSubscriptionByUserID(ctx, "u1")
	require.ErrorIs(t, err, store.ErrNotFound)

	base := nowUTC()
	require.NoError(t, s.Subscriptions().CreateSubscription(ctx, domain.Subscription{
		ID:        idx.New().String(),
		UserID:    "u1",
		Status:    domain.SubscriptionCanceled,
		PlanType:  domain.PlanTypePro,
		CreatedAt: base.Add(-time.Hour),
	}))
	require.NoError(t, s.Subscriptions().CreateSubscription(ctx, domain.Subscription{
		ID:        idx.New().String(),
		UserID:    "u1",
		Status:    domain.SubscriptionActive,
		PlanType:  domain.PlanTypeEnterprise,
		CreatedAt: base,
	}))

	got, err := s.Subscriptions().GetSubscriptionByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, domain.SubscriptionActive, got.Status)
	require.Equal(t, domain.PlanTypeEnterprise, got.PlanType)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sentinel := store.ErrAlreadyExists
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Profiles().CreateProfile(ctx, domain.Profile{
			ID: "u1", Email: "a@example.com", Name: "a",
		}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Profiles().GetProfileByID(ctx, "u1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Profiles().CreateProfile(ctx, domain.Profile{
			ID: "u1", Email: "a@example.com", Name: "a",
		})
	})
	require.NoError(t, err)

	got, err := s.Profiles().GetProfileByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
}
