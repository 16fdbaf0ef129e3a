// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// User roles. There is no hierarchy: an admin is only admitted where
// "admin" is explicitly listed in an allow-list.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the credential and identity record. The password is only ever
// stored as a bcrypt hash, the reset token only as a SHA256 hash.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID                   int64      `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Username             string     `db:"username" json:"userName"`
	Email                string     `db:"email" json:"email"`
	Photo                string     `db:"photo" json:"photo"`
	Role                 string     `db:"role" json:"role"`
	PasswordHash         string     `db:"password_hash" json:"-"`
	PasswordChangedAt    *time.Time `db:"password_changed_at" json:"-"`
	PasswordResetToken   *string    `db:"password_reset_token" json:"-"`
	PasswordResetExpires *time.Time `db:"password_reset_expires" json:"-"`
	Active               bool       `db:"active" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time (unix seconds). Tokens issued before the most
// recent password change are stale; this is the sole revocation mechanism.
func (u *User) ChangedPasswordAfter(issuedAt int64) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt < u.PasswordChangedAt.Unix()
}
