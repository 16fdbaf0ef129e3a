// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck/quizdeck/internal/database"
	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
)

// Password is the plaintext password every fixture user is created with.
const Password = "pass1234"

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a user with the fixture password and the user role.
func NewTestUser(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()
	return newUser(t, repo, username, models.RoleUser)
}

// NewTestAdmin creates a user with the fixture password and the admin role.
func NewTestAdmin(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()
	return newUser(t, repo, username, models.RoleAdmin)
}

func newUser(t *testing.T, repo *repository.Repository, username, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestSubscription creates a monthly subscription for the user ending at
// the given time.
func NewTestSubscription(t *testing.T, repo *repository.Repository, userID int64, endDate time.Time) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		UserID:  userID,
		Title:   "Monthly",
		Plan:    models.PlanMonthly,
		Price:   9.99,
		EndDate: endDate,
	}
	require.NoError(t, repo.CreateSubscription(context.Background(), sub))
	return sub
}

// NewTestQuestion creates a question with no answers attached.
func NewTestQuestion(t *testing.T, repo *repository.Repository, text string, createdBy int64) *models.Question {
	t.Helper()
	q := &models.Question{Text: text, CreatedBy: createdBy}
	require.NoError(t, repo.CreateQuestion(context.Background(), q))
	return q
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
