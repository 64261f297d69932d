package sqlite

import (
	"context"
	"database/sql"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, email, name, username, first_name, last_name, company, created_at, updated_at`

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = ? LIMIT 1`, id)

	p, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	now := nowUTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, username, first_name, last_name, company, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Email,
		p.Name,
		mapStringNull(p.Username),
		mapStringNull(p.FirstName),
		mapStringNull(p.LastName),
		mapStringNull(p.Company),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapConflict(err)
}

func scanProfile(row *sql.Row) (domain.Profile, error) {
	var p domain.Profile
	var username, firstName, lastName, company sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&username,
		&firstName,
		&lastName,
		&company,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}

	p.Username = mapNullString(username)
	p.FirstName = mapNullString(firstName)
	p.LastName = mapNullString(lastName)
	p.Company = mapNullString(company)
	return p, nil
}
