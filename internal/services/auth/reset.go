// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
)

const (
	// resetTokenLength is the number of random bytes in a reset token.
	resetTokenLength = 32
	// resetTokenExpiry is the validity window of a reset token.
	resetTokenExpiry = 10 * time.Minute
)

// HashResetToken computes the SHA256 hex digest under which reset tokens
// are stored. The plaintext token is only ever held in memory and in the
// emailed link.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RequestReset generates a one-time reset token for the active user with
// the given email, persists its hash with a 10 minute expiry, and emails
// the plaintext link. If delivery fails the token is cleared again — it
// must not stay valid when the user was never informed of it.
//
// An unknown email is reported as ErrUserNotFound. This mirrors the
// original contract and is a known enumeration risk: the response reveals
// whether an address is registered.
func (s *Service) RequestReset(ctx context.Context, email, baseURL string) error {
	user, err := s.repo.GetUserByEmail(ctx, email, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	buf := make([]byte, resetTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	plaintext := hex.EncodeToString(buf)

	expires := time.Now().Add(resetTokenExpiry)
	if err := s.repo.SetPasswordResetToken(ctx, user.ID, HashResetToken(plaintext), expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", strings.TrimSuffix(baseURL, "/"), plaintext)
	if err := s.mailer.SendPasswordReset(ctx, user, resetURL); err != nil {
		slog.Error("reset_email_failed", "user_id", user.ID, "error", err)
		if clearErr := s.repo.ClearPasswordResetToken(ctx, user.ID); clearErr != nil {
			slog.Error("reset_token_clear_failed", "user_id", user.ID, "error", clearErr)
		}
		return ErrEmailSend
	}

	slog.Info("reset_requested", "user_id", user.ID)
	return nil
}

// CompleteReset consumes a reset token: the candidate is hashed and looked
// up against unexpired stored hashes, the new password is set (stamping
// the change time and clearing the reset fields), and a fresh session
// token is issued.
func (s *Service) CompleteReset(ctx context.Context, token, password, passwordConfirm string) (*models.User, string, error) {
	user, err := s.repo.GetUserByResetToken(ctx, HashResetToken(token), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrResetTokenInvalid
		}
		return nil, "", fmt.Errorf("failed to look up reset token: %w", err)
	}

	if err := s.setPassword(ctx, user, password, passwordConfirm); err != nil {
		return nil, "", err
	}

	sessionToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	slog.Info("reset_completed", "user_id", user.ID)
	return user, sessionToken, nil
}
