// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// Question belongs to the question bank. Answers are referenced, not
// embedded; AnswerIDs is loaded from the join table, order is not
// significant.
type Question struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64   `db:"id" json:"id"`
	Text      string  `db:"text" json:"text"`
	Image     string  `db:"image" json:"image,omitempty"`
	CreatedBy int64   `db:"created_by" json:"createdBy"`
	AnswerIDs []int64 `db:"-" json:"answers"`
}

// Answer is a candidate answer to a question. Either text or image may
// carry the content; correctness is always explicit.
type Answer struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64  `db:"id" json:"id"`
	Text      string `db:"text" json:"text,omitempty"`
	Image     string `db:"image" json:"image,omitempty"`
	IsCorrect bool   `db:"is_correct" json:"isCorrect"`
}
