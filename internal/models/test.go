// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Test is a generated exam: a random subset of the question bank tied to
// the user it was generated for. Answers are reached transitively through
// the questions.
type Test struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	CreatedBy   int64     `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	QuestionIDs []int64   `db:"-" json:"questions"`
}
