// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/quizdeck/quizdeck/internal/models"
)

// CreateContent records an uploaded media object.
func (r *Repository) CreateContent(ctx context.Context, content *models.Content) error {
	content.CreatedAt = time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contents (key, url, content_type, uploaded_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		content.Key, content.URL, content.ContentType, content.UploadedBy, content.CreatedAt)
	if err != nil {
		return err
	}
	content.ID, err = res.LastInsertId()
	return err
}

// GetContent retrieves a content record by ID.
func (r *Repository) GetContent(ctx context.Context, id int64) (*models.Content, error) {
	var content models.Content
	if err := r.db.GetContext(ctx, &content, `SELECT * FROM contents WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &content, nil
}

// ListContents returns all content records, newest first.
func (r *Repository) ListContents(ctx context.Context) ([]models.Content, error) {
	var contents []models.Content
	err := r.db.SelectContext(ctx, &contents, `SELECT * FROM contents ORDER BY created_at DESC, id DESC`)
	return contents, err
}

// DeleteContent removes a content record by ID.
func (r *Repository) DeleteContent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
