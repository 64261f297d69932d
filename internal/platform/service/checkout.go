package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/internal/platform/payments"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
)

var (
	// ErrUnknownPlan is returned for a plan key outside the plan table.
	ErrUnknownPlan = errors.New("service: unknown plan")

	// ErrBillingNotConfigured is returned when the selected plan still
	// carries a placeholder price id. The provider is never contacted.
	ErrBillingNotConfigured = errors.New("service: billing not configured")
)

// Checkout starts subscription checkouts and reads billing state.
type Checkout struct {
	plans      map[string]domain.Plan
	payments   payments.Client
	store      store.Store
	successURL string
	cancelURL  string
}

func NewCheckout(plans map[string]domain.Plan, pc payments.Client, st store.Store, successURL, cancelURL string) *Checkout {
	return &Checkout{
		plans:      plans,
		payments:   pc,
		store:      st,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// Plans returns the plan table ordered by monthly price, for the pricing
// surface.
func (c *Checkout) Plans() []domain.Plan {
	out := make([]domain.Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MonthlyPrice < out[j].MonthlyPrice })
	return out
}

// StartCheckout creates a provider checkout session for the given plan and
// returns the hosted payment URL. A plan with a placeholder price id fails
// with ErrBillingNotConfigured before any provider call; provider failures
// are returned once, without retrying.
func (c *Checkout) StartCheckout(ctx context.Context, planKey, userID, email string) (string, error) {
	plan, ok := c.plans[planKey]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, planKey)
	}
	if plan.NotConfigured() {
		return "", ErrBillingNotConfigured
	}

	sess, err := c.payments.CreateCheckoutSession(ctx, payments.CheckoutParams{
		PriceID:       plan.PriceID,
		UserID:        userID,
		CustomerEmail: email,
		SuccessURL:    c.successURL,
		CancelURL:     c.cancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("start checkout for plan %s: %w", planKey, err)
	}
	return sess.URL, nil
}

// Subscription returns the user's newest subscription row. Users without one
// are on the implicit free tier.
func (c *Checkout) Subscription(ctx context.Context, userID string) (domain.Subscription, error) {
	sub, err := c.store.Subscriptions().GetSubscriptionByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Subscription{
			UserID:   userID,
			Status:   domain.SubscriptionActive,
			PlanType: domain.PlanTypeFree,
		}, nil
	}
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("fetch subscription for %s: %w", userID, err)
	}
	return sub, nil
}
