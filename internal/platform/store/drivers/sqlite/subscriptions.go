package sqlite

import (
	"context"
	"database/sql"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

type subscriptionsRepo struct {
	db dbtx
}

func (r *subscriptionsRepo) GetSubscriptionByUserID(
	ctx context.Context,
	userID string,
) (domain.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, stripe_customer_id, stripe_subscription_id, status, plan_type, created_at, updated_at
		 FROM subscriptions WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID)

	var sub domain.Subscription
	var customerID, subscriptionID sql.NullString
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&customerID,
		&subscriptionID,
		&sub.Status,
		&sub.PlanType,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return domain.Subscription{}, mapNotFound(err)
	}

	sub.StripeCustomerID = mapNullString(customerID)
	sub.StripeSubscriptionID = mapNullString(subscriptionID)
	return sub, nil
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, sub domain.Subscription) error {
	now := nowUTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	if sub.UpdatedAt.IsZero() {
		sub.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, user_id, stripe_customer_id, stripe_subscription_id, status, plan_type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.UserID,
		mapStringNull(sub.StripeCustomerID),
		mapStringNull(sub.StripeSubscriptionID),
		sub.Status,
		sub.PlanType,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	return mapConflict(err)
}
