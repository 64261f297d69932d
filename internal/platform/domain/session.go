package domain

import "time"

// Session is the application's read-only view of an identity-provider
// session. It is never persisted here; the provider owns its lifecycle.
type Session struct {
	Subject  string // provider user id, also the profile primary key
	Email    string
	Provider string // "email", "google", ...

	// Raw identity metadata embedded in the session token. Either or both
	// may be empty, in which case profile fields are derived from the email.
	FullName string
	Username string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
