package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// stateCookie carries the OAuth CSRF state between the redirect and the
// callback.
const stateCookie = "nimbus_oauth_state"

type OAuthHandler struct {
	Flow    *service.AuthFlow
	Metrics metrics.Recorder

	// PostLoginURL is where the browser lands after a completed OAuth
	// sign-in.
	PostLoginURL string
}

// HandleStart begins an OAuth sign-in.
//
//	@Summary		Start an OAuth sign-in
//	@Description	Redirects the browser to the provider's authorize page. Only "google" is supported.
//	@Tags			Auth
//	@Param			provider	path	string	true	"OAuth provider"
//	@Success		302			"Redirect to the provider"
//	@Failure		400			{object}	ErrorResponse	"Unsupported provider"
//	@Failure		503			{object}	ErrorResponse	"Provider not configured"
//	@Router			/v1/auth/oauth/{provider} [get].
func (h *OAuthHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	state := idx.New().String()

	u, err := h.Flow.SignInWithOAuth(provider, state, h.PostLoginURL)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUnsupportedProvider):
			writeError(w, http.StatusBadRequest, "unsupported_provider", "unknown oauth provider "+provider)
		case errors.Is(err, identity.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "oauth_not_configured", "oauth sign-in is not configured")
		default:
			slogx.FromContext(r.Context()).Error("oauth start failed", "provider", provider, "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "oauth sign-in failed")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/v1/auth/callback",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, u, http.StatusFound)
}

// HandleCallback completes an OAuth sign-in.
//
//	@Summary		OAuth callback
//	@Description	Exchanges the provider's authorization code for a session and redirects to the post-login page.
//	@Tags			Auth
//	@Param			code	query	string	true	"Authorization code"
//	@Param			state	query	string	true	"CSRF state"
//	@Success		302		"Redirect to the post-login page"
//	@Failure		400		{object}	ErrorResponse	"Missing or mismatched state or code"
//	@Failure		401		{object}	ErrorResponse	"Code exchange rejected"
//	@Router			/v1/auth/callback [get].
func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusBadRequest, "invalid_state", "missing oauth state cookie")
		return
	}
	if subtle.ConstantTimeCompare([]byte(c.Value), []byte(r.URL.Query().Get("state"))) != 1 {
		writeError(w, http.StatusBadRequest, "invalid_state", "oauth state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing authorization code")
		return
	}

	provider := r.URL.Query().Get("provider")
	if provider == "" {
		provider = "google"
	}

	result, err := h.Flow.CompleteOAuth(ctx, provider, code)
	if err != nil {
		log.Warn("oauth code exchange failed", "provider", provider, "err", err)
		writeError(w, http.StatusUnauthorized, "exchange_failed", "authorization code was rejected")
		return
	}

	h.Metrics.RecordAuthEvent("signed_in")
	log.Info("oauth sign-in completed", "provider", provider, "user_id", result.Session.Subject)

	setSessionCookie(w, result.AccessToken)
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/v1/auth/callback", MaxAge: -1})
	http.Redirect(w, r, h.PostLoginURL, http.StatusFound)
}
