package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeConfig carries the billing provider credentials. An empty SecretKey
// means billing is not configured and the client refuses all calls.
type StripeConfig struct {
	SecretKey string
}

// Configured reports whether a usable secret key is present.
func (c StripeConfig) Configured() bool {
	return c.SecretKey != ""
}

type stripeClient struct {
	cfg StripeConfig
	api *client.API
}

// NewStripeClient returns a Client backed by the Stripe API. The client is
// safe for concurrent use.
func NewStripeClient(cfg StripeConfig) Client {
	sc := &stripeClient{cfg: cfg}
	if cfg.Configured() {
		sc.api = &client.API{}
		sc.api.Init(cfg.SecretKey, nil)
	}
	return sc
}

func (c *stripeClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error) {
	if c.api == nil {
		return CheckoutSession{}, ErrNotConfigured
	}

	p := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(params.PriceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		ClientReferenceID: stripe.String(params.UserID),
	}
	if params.CustomerEmail != "" {
		p.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	p.Context = ctx

	sess, err := c.api.CheckoutSessions.New(p)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
