package platformsdk

import (
	"context"
	"net/http"
)

// Plans fetches the public pricing table.
func (c *SDKClient) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.doJSON(ctx, http.MethodGet, "/v1/plans", "", nil, &plans, http.StatusOK); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreateCheckoutSession starts a subscription checkout for the given plan.
func (s *Session) CreateCheckoutSession(ctx context.Context, planKey string) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	body := map[string]string{"plan_key": planKey}
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/create-checkout-session", s.token, body, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Subscription fetches the caller's billing state.
func (s *Session) Subscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/billing/subscription", s.token, nil, &sub, http.StatusOK); err != nil {
		return nil, err
	}
	return &sub, nil
}
