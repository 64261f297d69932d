package domain

import (
	"strings"
	"time"
)

// Profile is the application-level user record mirrored from (and created
// alongside) a provider session. Exactly one profile exists per session
// subject; it is created lazily the first time a session is observed without
// a matching row.
type Profile struct {
	ID        string // equals the session subject id
	Email     string
	Name      string
	Username  string
	FirstName string
	LastName  string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfileFromSession synthesizes a profile row from session metadata,
// deriving display name and username from the email local-part or the OAuth
// full name when absent.
func NewProfileFromSession(s Session) Profile {
	first, last := SplitFullName(s.FullName)
	return Profile{
		ID:        s.Subject,
		Email:     s.Email,
		Name:      DeriveName(s.FullName, s.Email),
		Username:  DeriveUsername(s.Username, s.Email),
		FirstName: first,
		LastName:  last,
	}
}

// DeriveName picks a display name: the full name when present, otherwise the
// email local-part, otherwise "User".
func DeriveName(fullName, email string) string {
	if fullName != "" {
		return fullName
	}
	if local := EmailLocalPart(email); local != "" {
		return local
	}
	return "User"
}

// DeriveUsername picks a username: the metadata username when present,
// otherwise the email local-part. May be empty.
func DeriveUsername(username, email string) string {
	if username != "" {
		return username
	}
	return EmailLocalPart(email)
}

// SplitFullName splits "First Middle Last" into ("First", "Middle Last").
// Both parts are empty for an empty input.
func SplitFullName(fullName string) (first, last string) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// EmailLocalPart returns the part of the address before the "@", or empty
// string when the address has none.
func EmailLocalPart(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return local
}
