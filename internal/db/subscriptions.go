package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetSubscription retrieves a user's subscription. Returns nil without error
// when the user has none (free plan).
func (db *DB) GetSubscription(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, plan, status, current_period_end, created_at, updated_at
		 FROM subscriptions WHERE user_id = $1`,
		userID,
	).Scan(&sub.UserID, &sub.Plan, &sub.Status, &sub.CurrentPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// UpsertSubscription records the subscription state reported by the payment
// provider's callback.
func (db *DB) UpsertSubscription(ctx context.Context, userID uuid.UUID, plan, status string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO subscriptions (user_id, plan, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET plan = $2, status = $3, updated_at = NOW()`,
		userID, plan, status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}
