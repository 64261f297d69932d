package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

type SessionHandler struct {
	Flow *service.AuthFlow
}

// ServeHTTP reports the auth state for the caller's token.
//
//	@Summary		Get the current session
//	@Description	Resolves the caller's session token to its session and profile. An absent or invalid token yields a null session rather than an error.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthResponse	"Current auth state; session is null when anonymous"
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := tokenFromRequest(r)
	if token == "" {
		httpx.WriteJSON(w, http.StatusOK, AuthResponse{})
		return
	}

	session, err := h.Flow.Session(ctx, token)
	if err != nil {
		// An unverifiable token is indistinguishable from no token.
		log.Warn("session check failed", "err", err)
		httpx.WriteJSON(w, http.StatusOK, AuthResponse{})
		return
	}

	resp := AuthResponse{Session: sessionResponse(session)}

	// A profile resolution failure is not a sign-out; the session is still
	// reported with a null profile.
	if profile, err := h.Flow.ResolveProfile(ctx, session); err != nil {
		log.Warn("profile resolution failed", "user_id", session.Subject, "err", err)
	} else {
		resp.Profile = profileResponse(profile)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
