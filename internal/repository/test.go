// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/quizdeck/quizdeck/internal/models"
)

// CreateTest inserts a test together with its question references.
func (r *Repository) CreateTest(ctx context.Context, test *models.Test) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	test.CreatedAt = time.Now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tests (title, created_by, created_at) VALUES (?, ?, ?)`,
		test.Title, test.CreatedBy, test.CreatedAt)
	if err != nil {
		return err
	}
	if test.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	for _, questionID := range test.QuestionIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO test_questions (test_id, question_id) VALUES (?, ?)`,
			test.ID, questionID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTest retrieves a test and its question references.
func (r *Repository) GetTest(ctx context.Context, id int64) (*models.Test, error) {
	var test models.Test
	if err := r.db.GetContext(ctx, &test, `SELECT * FROM tests WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	if err := r.db.SelectContext(ctx, &test.QuestionIDs,
		`SELECT question_id FROM test_questions WHERE test_id = ?`, id); err != nil {
		return nil, err
	}
	return &test, nil
}

// ListTests returns all tests with their question references, newest first.
func (r *Repository) ListTests(ctx context.Context) ([]models.Test, error) {
	var tests []models.Test
	if err := r.db.SelectContext(ctx, &tests, `SELECT * FROM tests ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, err
	}
	for i := range tests {
		if err := r.db.SelectContext(ctx, &tests[i].QuestionIDs,
			`SELECT question_id FROM test_questions WHERE test_id = ?`, tests[i].ID); err != nil {
			return nil, err
		}
	}
	return tests, nil
}
