package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

type SignInHandler struct {
	Flow    *service.AuthFlow
	Metrics metrics.Recorder
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles credential sign-in.
//
//	@Summary		Sign in with email and password
//	@Description	Exchanges credentials for a session. The session token is returned in the body and set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signInRequest	true	"Credentials"
//	@Success		200		{object}	AuthResponse	"Session established; profile resolution is asynchronous"
//	@Failure		400		{object}	ErrorResponse	"Malformed request body"
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/signin [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	result, err := h.Flow.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
			return
		}
		log.Error("sign-in failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "sign-in failed")
		return
	}

	h.Metrics.RecordAuthEvent("signed_in")

	// The cookie and body carry the token minted for this call, never the
	// process-wide snapshot: a concurrent sign-in may have replaced it.
	setSessionCookie(w, result.AccessToken)

	// The profile is resolved through the auth event loop; report the state
	// as of now rather than waiting for it.
	state := h.Flow.State()
	resp := AuthResponse{AccessToken: result.AccessToken, Session: sessionResponse(result.Session)}
	if state.Profile != nil && state.Profile.ID == result.Session.Subject {
		resp.Profile = profileResponse(*state.Profile)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
