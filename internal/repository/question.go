// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/vinovest/sqlx"
)

// CreateQuestion inserts a question together with its answer references.
func (r *Repository) CreateQuestion(ctx context.Context, q *models.Question) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO questions (text, image, created_by) VALUES (?, ?, ?)`,
		q.Text, q.Image, q.CreatedBy)
	if err != nil {
		return err
	}
	if q.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	if err := replaceQuestionAnswers(ctx, tx, q.ID, q.AnswerIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// GetQuestion retrieves a question and its answer references.
func (r *Repository) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var q models.Question
	if err := r.db.GetContext(ctx, &q, `SELECT * FROM questions WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	if err := r.db.SelectContext(ctx, &q.AnswerIDs,
		`SELECT answer_id FROM question_answers WHERE question_id = ?`, id); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns the whole question bank with answer references.
func (r *Repository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.SelectContext(ctx, &questions, `SELECT * FROM questions ORDER BY id`); err != nil {
		return nil, err
	}
	for i := range questions {
		if err := r.db.SelectContext(ctx, &questions[i].AnswerIDs,
			`SELECT answer_id FROM question_answers WHERE question_id = ?`, questions[i].ID); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// UpdateQuestion updates a question and replaces its answer references.
func (r *Repository) UpdateQuestion(ctx context.Context, q *models.Question) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx,
		`UPDATE questions SET text = ?, image = ? WHERE id = ?`, q.Text, q.Image, q.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if err := replaceQuestionAnswers(ctx, tx, q.ID, q.AnswerIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteQuestion removes a question; its join rows cascade.
func (r *Repository) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// SampleQuestionIDs draws a uniform random sample of up to limit question
// ids without replacement. A bank smaller than the limit yields the whole
// bank, never an error.
func (r *Repository) SampleQuestionIDs(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`SELECT id FROM questions ORDER BY RANDOM() LIMIT ?`, limit)
	return ids, err
}

// CountQuestions returns the size of the question bank.
func (r *Repository) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`)
	return count, err
}

func replaceQuestionAnswers(ctx context.Context, tx *sqlx.Tx, questionID int64, answerIDs []int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM question_answers WHERE question_id = ?`, questionID); err != nil {
		return err
	}
	for _, answerID := range answerIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO question_answers (question_id, answer_id) VALUES (?, ?)`,
			questionID, answerID); err != nil {
			return err
		}
	}
	return nil
}

// CreateAnswer inserts an answer and fills in its ID.
func (r *Repository) CreateAnswer(ctx context.Context, a *models.Answer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (text, image, is_correct) VALUES (?, ?, ?)`,
		a.Text, a.Image, a.IsCorrect)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

// GetAnswer retrieves an answer by ID.
func (r *Repository) GetAnswer(ctx context.Context, id int64) (*models.Answer, error) {
	var a models.Answer
	if err := r.db.GetContext(ctx, &a, `SELECT * FROM answers WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &a, nil
}

// ListAnswers returns all answers.
func (r *Repository) ListAnswers(ctx context.Context) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.SelectContext(ctx, &answers, `SELECT * FROM answers ORDER BY id`)
	return answers, err
}

// UpdateAnswer updates all fields of an answer.
func (r *Repository) UpdateAnswer(ctx context.Context, a *models.Answer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE answers SET text = ?, image = ?, is_correct = ? WHERE id = ?`,
		a.Text, a.Image, a.IsCorrect, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// DeleteAnswer removes an answer; question references cascade.
func (r *Repository) DeleteAnswer(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
