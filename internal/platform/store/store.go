package store

import (
	"context"
	"errors"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let tests wrap a
// single repo without faking the whole store.
type Store interface {
	Profiles() Profiles
	Subscriptions() Subscriptions
	Identities() Identities

	ApplyMigrations() error

	// Tx starts a read/write transaction scoped to the same repositories.
	// The caller MUST Commit or Rollback the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Profiles() Profiles
	Subscriptions() Subscriptions
	Identities() Identities

	Commit() error
	Rollback() error
}

// Profiles is the users-table contract: select a single row by the session
// subject id, and insert a new row. Profiles are never deleted by this
// service and the edit surface does not write through this layer.
type Profiles interface {
	// GetProfileByID returns the profile row keyed by the session subject id.
	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)

	// CreateProfile inserts a new row. Returns ErrAlreadyExists when a row
	// with the same id (or username) is already present.
	CreateProfile(ctx context.Context, p domain.Profile) error
}

// Identities holds credentials for the built-in identity provider (local
// mode only).
type Identities interface {
	// GetIdentityByEmail returns the credential record for an email address.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// GetIdentityByID returns the credential record by subject id.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// CreateIdentity inserts a credential record. Returns ErrAlreadyExists
	// when the email is taken.
	CreateIdentity(ctx context.Context, ident domain.Identity) error
}

// Subscriptions exposes billing state. Rows originate from the billing
// provider's webhook pipeline outside this service.
type Subscriptions interface {
	// GetSubscriptionByUserID returns the newest subscription for a user.
	GetSubscriptionByUserID(ctx context.Context, userID string) (domain.Subscription, error)

	// CreateSubscription inserts a subscription row (id is a ULID).
	CreateSubscription(ctx context.Context, sub domain.Subscription) error
}
