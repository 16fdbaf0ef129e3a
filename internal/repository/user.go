// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/quizdeck/quizdeck/internal/models"
)

// Soft-deleted users (active = 0) are excluded from every lookup unless the
// caller explicitly passes includeInactive. This replaces the implicit
// query interception the feature started out with.

// CreateUser inserts a new user record and fills in its ID.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Photo == "" {
		user.Photo = "default.jpg"
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.Active = true

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, username, email, photo, role, password_hash, password_changed_at, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		user.Name, user.Username, user.Email, user.Photo, user.Role,
		user.PasswordHash, user.PasswordChangedAt, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return err
	}
	user.ID, err = res.LastInsertId()
	return err
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64, includeInactive bool) (*models.User, error) {
	return r.getUserBy(ctx, "id", id, includeInactive)
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string, includeInactive bool) (*models.User, error) {
	return r.getUserBy(ctx, "username", username, includeInactive)
}

// GetUserByEmail retrieves a user by email. The email column is declared
// COLLATE NOCASE, so the match is case-insensitive.
func (r *Repository) GetUserByEmail(ctx context.Context, email string, includeInactive bool) (*models.User, error) {
	return r.getUserBy(ctx, "email", email, includeInactive)
}

func (r *Repository) getUserBy(ctx context.Context, column string, value any, includeInactive bool) (*models.User, error) {
	query := `SELECT * FROM users WHERE ` + column + ` = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UsernameExists reports whether any user (active or not) holds the username.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.userFieldExists(ctx, "username", username)
}

// EmailExists reports whether any user (active or not) holds the email.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.userFieldExists(ctx, "email", email)
}

// NameExists reports whether any user (active or not) holds the name.
func (r *Repository) NameExists(ctx context.Context, name string) (bool, error) {
	return r.userFieldExists(ctx, "name", name)
}

func (r *Repository) userFieldExists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE `+column+` = ?`, value)
	return count > 0, err
}

// UpdateUser updates the mutable profile fields of a user.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, photo = ?, role = ?, updated_at = ? WHERE id = ?`,
		user.Name, user.Email, user.Photo, user.Role, user.UpdatedAt, user.ID)
	return err
}

// UpdateUserPassword stores a new password hash and stamps the change time.
// Any outstanding reset token is cleared in the same statement so a consumed
// or superseded token can never be replayed.
func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string, changedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, password_changed_at = ?,
		 password_reset_token = NULL, password_reset_expires = NULL, updated_at = ? WHERE id = ?`,
		passwordHash, changedAt, time.Now(), id)
	return err
}

// SetPasswordResetToken stores the hashed reset token and its expiry.
// This is a partial update on purpose: it must not re-run signup validation.
func (r *Repository) SetPasswordResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_reset_token = ?, password_reset_expires = ?, updated_at = ? WHERE id = ?`,
		tokenHash, expires, time.Now(), id)
	return err
}

// ClearPasswordResetToken removes an outstanding reset token, used when
// delivery of the reset email fails.
func (r *Repository) ClearPasswordResetToken(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_reset_token = NULL, password_reset_expires = NULL, updated_at = ? WHERE id = ?`,
		time.Now(), id)
	return err
}

// GetUserByResetToken retrieves the active user whose stored reset-token
// hash matches and whose token has not yet expired.
func (r *Repository) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE password_reset_token = ? AND password_reset_expires > ? AND active = 1`,
		tokenHash, now)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// DeactivateUser soft-deletes a user by flipping the active flag; the
// record stays in place but disappears from default lookups.
func (r *Repository) DeactivateUser(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET active = 0, updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

// DeleteUser removes a user record entirely.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// ListUsers returns all active users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT * FROM users WHERE active = 1 ORDER BY created_at DESC`)
	return users, err
}

// SearchUsersByUsername returns active users whose username contains the
// query, matched case-insensitively.
func (r *Repository) SearchUsersByUsername(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT * FROM users WHERE username LIKE ? COLLATE NOCASE AND active = 1 ORDER BY username`,
		"%"+query+"%")
	return users, err
}
