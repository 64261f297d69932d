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

type CheckoutHandler struct {
	Checkout *service.Checkout
	Metrics  metrics.Recorder
}

type checkoutRequest struct {
	PlanKey string `json:"plan_key"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// ServeHTTP starts a subscription checkout.
//
//	@Summary		Create a checkout session
//	@Description	Creates a billing-provider checkout session for the given plan and returns the hosted payment URL.
//	@Description	A plan without a real price configured is refused without contacting the provider. Failures are not retried.
//	@Tags			Billing
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		checkoutRequest		true	"Plan selection"
//	@Success		200		{object}	checkoutResponse	"Hosted payment page URL"
//	@Failure		400		{object}	ErrorResponse		"Unknown plan or malformed body"
//	@Failure		401		{object}	ErrorResponse		"Missing or invalid session"
//	@Failure		503		{object}	ErrorResponse		"Billing not configured"
//	@Failure		502		{object}	ErrorResponse		"Billing provider failure"
//	@Router			/api/create-checkout-session [post].
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	session, ok := sessionFromContext(ctx)
	if !ok {
		writeBearerError(w, "missing session token")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	u, err := h.Checkout.StartCheckout(ctx, req.PlanKey, session.Subject, session.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlan):
			h.Metrics.RecordCheckoutRefused("unknown_plan")
			writeError(w, http.StatusBadRequest, "unknown_plan", "no such plan: "+req.PlanKey)
		case errors.Is(err, service.ErrBillingNotConfigured):
			h.Metrics.RecordCheckoutRefused("not_configured")
			writeError(w, http.StatusServiceUnavailable, "billing_not_configured", "billing is not configured for this deployment")
		default:
			h.Metrics.RecordCheckoutRefused("provider_error")
			log.Error("checkout failed", "plan", req.PlanKey, "user_id", session.Subject, "err", err)
			writeError(w, http.StatusBadGateway, "checkout_failed", "could not start checkout")
		}
		return
	}

	h.Metrics.RecordCheckoutStarted(req.PlanKey)
	httpx.WriteJSON(w, http.StatusOK, checkoutResponse{URL: u})
}
