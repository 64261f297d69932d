package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProfileFromSession(t *testing.T) {
	t.Parallel()

	t.Run("derives everything from email when metadata absent", func(t *testing.T) {
		p := NewProfileFromSession(Session{
			Subject: "u1",
			Email:   "alice@example.com",
		})
		require.Equal(t, "u1", p.ID)
		require.Equal(t, "alice@example.com", p.Email)
		require.Equal(t, "alice", p.Name)
		require.Equal(t, "alice", p.Username)
		require.Empty(t, p.FirstName)
		require.Empty(t, p.LastName)
	})

	t.Run("prefers oauth metadata when present", func(t *testing.T) {
		p := NewProfileFromSession(Session{
			Subject:  "u2",
			Email:    "bob@example.com",
			FullName: "Bob J Smith",
			Username: "bobsmith",
		})
		require.Equal(t, "Bob J Smith", p.Name)
		require.Equal(t, "bobsmith", p.Username)
		require.Equal(t, "Bob", p.FirstName)
		require.Equal(t, "J Smith", p.LastName)
	})

	t.Run("falls back to User with no email and no name", func(t *testing.T) {
		p := NewProfileFromSession(Session{Subject: "u3"})
		require.Equal(t, "User", p.Name)
		require.Empty(t, p.Username)
	})
}

func TestSplitFullName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"", "", ""},
		{"Cher", "Cher", ""},
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"  Jean  Luc  Picard ", "Jean", "Luc Picard"},
	}
	for _, tc := range cases {
		first, last := SplitFullName(tc.in)
		require.Equal(t, tc.first, first, "input %q", tc.in)
		require.Equal(t, tc.last, last, "input %q", tc.in)
	}
}

func TestEmailLocalPart(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alice", EmailLocalPart("alice@example.com"))
	require.Empty(t, EmailLocalPart("not-an-email"))
	require.Empty(t, EmailLocalPart(""))
}
