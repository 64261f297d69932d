package domain

import "time"

// Subscription statuses mirror the billing provider's vocabulary.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
	SubscriptionUnpaid   = "unpaid"
)

// Subscription plan types.
const (
	PlanTypeFree       = "free"
	PlanTypePro        = "pro"
	PlanTypeEnterprise = "enterprise"
)

// Subscription records a user's billing state. Rows are written by the
// billing provider's webhook pipeline, which lives outside this service;
// here they are read-only.
type Subscription struct {
	ID                   string
	UserID               string
	StripeCustomerID     string
	StripeSubscriptionID string
	Status               string
	PlanType             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
