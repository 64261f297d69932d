package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

type BillingHandler struct {
	Checkout *service.Checkout
}

// ServeHTTP returns the caller's billing state.
//
//	@Summary		Get the current subscription
//	@Description	Returns the caller's newest subscription. Users without one are reported on the free tier.
//	@Tags			Billing
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	SubscriptionResponse	"Billing state"
//	@Failure		401	{object}	ErrorResponse			"Missing or invalid session"
//	@Failure		500	{object}	ErrorResponse			"Internal server error"
//	@Router			/v1/billing/subscription [get].
func (h *BillingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeBearerError(w, "missing session token")
		return
	}

	sub, err := h.Checkout.Subscription(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("subscription lookup failed", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "could not load subscription")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SubscriptionResponse{
		Status:   sub.Status,
		PlanType: sub.PlanType,
	})
}
