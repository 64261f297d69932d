package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

type PlansHandler struct {
	Checkout *service.Checkout
}

// ServeHTTP returns the public pricing table.
//
//	@Summary		List plans
//	@Description	Returns the plan table for the pricing page. Available is false while billing is unconfigured.
//	@Tags			Billing
//	@Produce		json
//	@Success		200	{array}	PlanResponse	"Plan table ordered by price"
//	@Router			/v1/plans [get].
func (h *PlansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	plans := h.Checkout.Plans()

	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{
			Key:          p.Key,
			Name:         p.Name,
			MonthlyPrice: p.MonthlyPrice,
			Features:     p.Features,
			Available:    !p.NotConfigured(),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
