package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// sessionCookie persists the session token across requests, mirroring the
// Authorization header for browser callers.
const sessionCookie = "nimbus_session"

type sessionCtxKey struct{}

func contextWithSession(ctx context.Context, s domain.Session) context.Context {
	ctx = context.WithValue(ctx, httpx.CtxKeyUserID, s.Subject)
	ctx = context.WithValue(ctx, httpx.CtxKeyEmail, s.Email)
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func sessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(domain.Session)
	return s, ok
}

// tokenFromRequest reads the session token from the Authorization header,
// falling back to the session cookie.
func tokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// AuthnMiddleware verifies the request's session token against the identity
// provider and injects the session into the request context.
func AuthnMiddleware(idc identity.Client) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := tokenFromRequest(r)
			if token == "" {
				writeBearerError(w, "missing session token")
				return
			}

			session, err := idc.SessionFromToken(ctx, token)
			if err != nil {
				log.Warn("session verification failed", "err", err)
				writeBearerError(w, "invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, session)))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
