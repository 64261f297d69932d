package sqlite

import (
	"database/sql"

	"github.com/nimbuslabs/nimbus/internal/platform/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Profiles() store.Profiles           { return &profilesRepo{db: t.tx} }
func (t *txStore) Subscriptions() store.Subscriptions { return &subscriptionsRepo{db: t.tx} }
func (t *txStore) Identities() store.Identities       { return &identitiesRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }
