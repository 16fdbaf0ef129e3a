// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/quizdeck/quizdeck/internal/models"
)

// CreateSubscription inserts a new subscription and fills in its ID.
func (r *Repository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.StartDate.IsZero() {
		sub.StartDate = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, title, description, plan, price, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.UserID, sub.Title, sub.Description, sub.Plan, sub.Price, sub.StartDate, sub.EndDate)
	if err != nil {
		return err
	}
	sub.ID, err = res.LastInsertId()
	return err
}

// GetSubscription retrieves a subscription by ID.
func (r *Repository) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.GetContext(ctx, &sub, `SELECT * FROM subscriptions WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &sub, nil
}

// GetActiveSubscription returns a subscription owned by the user whose end
// date has not passed at the given instant. An end date exactly equal to
// now still counts.
func (r *Repository) GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.GetContext(ctx, &sub,
		`SELECT * FROM subscriptions WHERE user_id = ? AND end_date >= ? LIMIT 1`,
		userID, now)
	if err != nil {
		return nil, wrapError(err)
	}
	return &sub, nil
}

// UpdateSubscription updates all mutable fields of a subscription.
func (r *Repository) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET user_id = ?, title = ?, description = ?, plan = ?, price = ?, start_date = ?, end_date = ?
		 WHERE id = ?`,
		sub.UserID, sub.Title, sub.Description, sub.Plan, sub.Price, sub.StartDate, sub.EndDate, sub.ID)
	return err
}

// DeleteSubscription removes a subscription by ID.
func (r *Repository) DeleteSubscription(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// ListSubscriptions returns all subscriptions.
func (r *Repository) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.SelectContext(ctx, &subs, `SELECT * FROM subscriptions ORDER BY id`)
	return subs, err
}
