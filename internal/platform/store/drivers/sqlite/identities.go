package sqlite

import (
	"context"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

type identitiesRepo struct {
	db dbtx
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, provider, created_at FROM identities WHERE email = ? LIMIT 1`,
		email)

	var ident domain.Identity
	err := row.Scan(&ident.ID, &ident.Email, &ident.PasswordHash, &ident.Provider, &ident.CreatedAt)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return ident, nil
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, provider, created_at FROM identities WHERE id = ? LIMIT 1`,
		id)

	var ident domain.Identity
	err := row.Scan(&ident.ID, &ident.Email, &ident.PasswordHash, &ident.Provider, &ident.CreatedAt)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return ident, nil
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, ident domain.Identity) error {
	if ident.CreatedAt.IsZero() {
		ident.CreatedAt = nowUTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, email, password_hash, provider, created_at) VALUES (?, ?, ?, ?, ?)`,
		ident.ID,
		ident.Email,
		ident.PasswordHash,
		ident.Provider,
		ident.CreatedAt,
	)
	return mapConflict(err)
}
