// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the credential store, session tokens and the
// password reset flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
)

// bcryptCost matches the work factor the user base was hashed with.
const bcryptCost = 12

const minPasswordLength = 8

// dummyHash is used for constant-time login to prevent timing attacks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcryptCost)

// Mailer delivers the password reset message. Send failure must be
// reported so the flow can invalidate the token the user never received.
type Mailer interface {
	SendPasswordReset(ctx context.Context, user *models.User, resetURL string) error
}

// Service implements signup, login, password change and the reset flow.
type Service struct {
	repo   *repository.Repository
	tokens *TokenService
	mailer Mailer
}

// NewService creates an auth service.
func NewService(repo *repository.Repository, tokens *TokenService, mailer Mailer) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer}
}

// Tokens returns the token service, for handlers that mint tokens directly.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// SignupParams holds the parameters for user registration.
type SignupParams struct {
	Name            string
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
}

// Signup validates the registration fields, checks uniqueness explicitly
// so each collision gets its own message, hashes the password and creates
// the user. The plaintext confirmation is discarded; a freshly created
// user carries no password-changed timestamp.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	if params.Username == "" {
		return nil, &ValidationError{Message: "Username is required!"}
	}
	if params.Password != params.PasswordConfirm {
		return nil, &ValidationError{Message: "Passwords are not the same!"}
	}
	if len(params.Password) < minPasswordLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength)}
	}

	// The explicit checks produce specific messages; the UNIQUE indexes
	// remain the backstop for two concurrent signups racing past them.
	if taken, err := s.repo.UsernameExists(ctx, params.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, &ValidationError{Message: "Username is already in use."}
	}
	if taken, err := s.repo.EmailExists(ctx, params.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, &ValidationError{Message: "Email address is already in use."}
	}
	if taken, err := s.repo.NameExists(ctx, params.Name); err != nil {
		return nil, fmt.Errorf("failed to check name: %w", err)
	} else if taken {
		return nil, &ValidationError{Message: "Name is already in use."}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := params.Role
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	user := &models.User{
		Name:         params.Name,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("signup_success", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login authenticates by username and password.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.GetUserByUsername(ctx, username, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform a bcrypt comparison.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "username", username, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "username", username, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "username", username)
	return user, nil
}

// ChangePassword changes a user's password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, newPasswordConfirm string) error {
	user, err := s.repo.GetUserByID(ctx, userID, false)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return s.setPassword(ctx, user, newPassword, newPasswordConfirm)
}

// setPassword re-hashes and persists a new password. The change time is
// stamped one second in the past so a session token minted in the same
// instant is not mistaken for stale.
func (s *Service) setPassword(ctx context.Context, user *models.User, password, passwordConfirm string) error {
	if password != passwordConfirm {
		return &ValidationError{Message: "Passwords are not the same!"}
	}
	if len(password) < minPasswordLength {
		return &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength)}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	changedAt := time.Now().Add(-time.Second)
	if err := s.repo.UpdateUserPassword(ctx, user.ID, string(passwordHash), changedAt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password_changed", "user_id", user.ID)
	return nil
}

// ResolveToken verifies a session token and resolves its user. The user is
// always re-fetched; an absent user yields ErrUserGone, a token issued
// before the most recent password change ErrStaleToken even when its own
// expiry has not elapsed.
func (s *Service) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserGone
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if claims.IssuedAt == nil || user.ChangedPasswordAfter(claims.IssuedAt.Unix()) {
		return nil, ErrStaleToken
	}

	return user, nil
}
