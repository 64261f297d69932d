package identity

import (
	"testing"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-test-secret-test-1234")

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	in := domain.Session{
		Subject:  "u1",
		Email:    "alice@example.com",
		Provider: "email",
		FullName: "Alice Example",
		Username: "alice",
	}

	token, err := MintSessionToken(testSecret, "nimbus-local", in, time.Hour)
	require.NoError(t, err)

	out, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, "u1", out.Subject)
	require.Equal(t, "alice@example.com", out.Email)
	require.Equal(t, "email", out.Provider)
	require.Equal(t, "Alice Example", out.FullName)
	require.Equal(t, "alice", out.Username)
	require.False(t, out.ExpiresAt.IsZero())
	require.False(t, out.Expired(time.Now()))
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := MintSessionToken(testSecret, "nimbus-local", domain.Session{Subject: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("a completely different secret!!"), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	token, err := MintSessionToken(testSecret, "nimbus-local", domain.Session{Subject: "u1"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseSessionToken(testSecret, "not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSessionToken(testSecret, "")
	require.ErrorIs(t, err, ErrInvalidToken)
}
