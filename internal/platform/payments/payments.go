// Package payments wraps the billing provider behind a small client
// interface so the checkout service can be tested without network access.
package payments

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no billing credentials are present.
var ErrNotConfigured = errors.New("payments: not configured")

// CheckoutParams describe a subscription checkout to be started.
type CheckoutParams struct {
	PriceID       string
	UserID        string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider-hosted payment page the browser is sent to.
type CheckoutSession struct {
	ID  string
	URL string
}

// Client creates checkout sessions with the billing provider. Calls fail
// without retrying.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
}
