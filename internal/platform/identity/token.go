package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

// Session tokens are HS256 JWTs signed with the secret shared with the
// identity vendor. Identity attributes ride along in the claims the same way
// the hosted vendors embed them.
type sessionClaims struct {
	jwt.RegisteredClaims

	Email        string       `json:"email,omitempty"`
	AppMetadata  appMetadata  `json:"app_metadata"`
	UserMetadata userMetadata `json:"user_metadata"`
}

type appMetadata struct {
	Provider string `json:"provider,omitempty"`
}

type userMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

// ParseSessionToken verifies an HS256 session token and maps its claims to a
// Session.
func ParseSessionToken(secret []byte, token string) (domain.Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return domain.Session{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	s := domain.Session{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Provider: claims.AppMetadata.Provider,
		FullName: claims.UserMetadata.FullName,
		Username: claims.UserMetadata.Name,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// MintSessionToken signs a session token for the given session. Used by the
// local provider; hosted vendors mint their own.
func MintSessionToken(secret []byte, issuer string, s domain.Session, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:        s.Email,
		AppMetadata:  appMetadata{Provider: s.Provider},
		UserMetadata: userMetadata{FullName: s.FullName, Name: s.Username},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
