package domain

import "time"

// Identity is a credential record held by the built-in identity provider.
// It only exists in local mode; when a hosted vendor is configured the
// vendor owns all credentials.
type Identity struct {
	ID           string // becomes the session subject and profile id
	Email        string
	PasswordHash string // argon2id encoded; empty for OAuth-only identities
	Provider     string // "email" or the OAuth provider name
	CreatedAt    time.Time
}
