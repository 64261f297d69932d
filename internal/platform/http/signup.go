package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

type SignUpHandler struct {
	Flow    *service.AuthFlow
	Metrics metrics.Recorder
}

type signUpRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ServeHTTP handles account registration.
//
//	@Summary		Create an account
//	@Description	Registers a new account and writes its profile from the form fields. Signs the new account in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signUpRequest	true	"Registration form"
//	@Success		201		{object}	AuthResponse	"Account created and signed in"
//	@Failure		400		{object}	ErrorResponse	"Malformed request body"
//	@Failure		409		{object}	ErrorResponse	"Email already registered"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/signup [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	result, profile, err := h.Flow.SignUp(ctx, service.SignUpParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
			return
		}
		log.Error("sign-up failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "sign-up failed")
		return
	}

	h.Metrics.RecordAuthEvent("signed_in")
	h.Metrics.RecordProfileCreated()
	setSessionCookie(w, result.AccessToken)

	httpx.WriteJSON(w, http.StatusCreated, AuthResponse{
		AccessToken: result.AccessToken,
		Session:     sessionResponse(result.Session),
		Profile:     profileResponse(profile),
	})
}
