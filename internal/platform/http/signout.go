package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/internal/platform/service"
)

type SignOutHandler struct {
	Flow    *service.AuthFlow
	Metrics metrics.Recorder
}

// ServeHTTP handles sign-out.
//
//	@Summary		Sign out
//	@Description	Clears the session unconditionally. A provider-side failure still signs the caller out locally.
//	@Tags			Auth
//	@Success		204	"Signed out"
//	@Router			/v1/auth/signout [post].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Flow.SignOut(r.Context(), tokenFromRequest(r))
	h.Metrics.RecordAuthEvent("signed_out")

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
