// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Subscription plans.
const (
	PlanDaily   = "daily"
	PlanWeekly  = "weekly"
	PlanMonthly = "monthly"
)

// Subscription grants a user access to subscription-gated resources.
// A subscription is active while EndDate >= now; expiry is evaluated
// lazily at request time, there is no background expiry job.
type Subscription struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Plan        string    `db:"plan" json:"plan"`
	Price       float64   `db:"price" json:"price"`
	StartDate   time.Time `db:"start_date" json:"startDate"`
	EndDate     time.Time `db:"end_date" json:"endDate"`
}

// ActiveAt reports whether the subscription is active at the given time.
// An end date exactly equal to now still counts as active.
func (s *Subscription) ActiveAt(now time.Time) bool {
	return !s.EndDate.Before(now)
}
