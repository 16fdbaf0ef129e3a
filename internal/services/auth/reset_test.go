// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck/quizdeck/internal/services/auth"
)

const baseURL = "http://localhost:8080"

// lastToken extracts the plaintext token from the most recently mailed
// reset link.
func lastToken(t *testing.T, mailer *fakeMailer) string {
	t.Helper()
	require.NotEmpty(t, mailer.urls)
	url := mailer.urls[len(mailer.urls)-1]
	return url[strings.LastIndexByte(url, '/')+1:]
}

func TestRequestReset(t *testing.T) {
	svc, repo, mailer := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, signupParams("testuser"))
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset(ctx, "testuser@example.com", baseURL))

	require.Len(t, mailer.urls, 1)
	assert.True(t, strings.HasPrefix(mailer.urls[0], baseURL+"/api/v1/users/resetPassword/"))

	// Only the hash is stored, never the plaintext token.
	token := lastToken(t, mailer)
	stored, err := repo.GetUserByID(ctx, user.ID, false)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetToken)
	assert.NotEqual(t, token, *stored.PasswordResetToken)
	assert.Equal(t, auth.HashResetToken(token), *stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordResetExpires)
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	err := svc.RequestReset(ctx, "nobody@example.com", baseURL)

	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestRequestReset_SendFailureClearsToken(t *testing.T) {
	svc, repo, mailer := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, signupParams("testuser"))
	require.NoError(t, err)

	mailer.err = errors.New("smtp down")
	err = svc.RequestReset(ctx, "testuser@example.com", baseURL)

	assert.ErrorIs(t, err, auth.ErrEmailSend)

	stored, err := repo.GetUserByID(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordResetToken)
	assert.Nil(t, stored.PasswordResetExpires)
}

func TestCompleteReset(t *testing.T) {
	svc, _, mailer := newAuthService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, signupParams("testuser"))
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset(ctx, "testuser@example.com", baseURL))
	token := lastToken(t, mailer)

	user, sessionToken, err := svc.CompleteReset(ctx, token, "newpass1234", "newpass1234")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, sessionToken)

	_, err = svc.Login(ctx, "testuser", "newpass1234")
	require.NoError(t, err)
}

func TestCompleteReset_ConsumesToken(t *testing.T) {
	svc, _, mailer := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupParams("testuser"))
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset(ctx, "testuser@example.com", baseURL))
	token := lastToken(t, mailer)

	_, _, err = svc.CompleteReset(ctx, token, "newpass1234", "newpass1234")
	require.NoError(t, err)

	_, _, err = svc.CompleteReset(ctx, token, "otherpass1234", "otherpass1234")

	assert.ErrorIs(t, err, auth.ErrResetTokenInvalid)
}

func TestCompleteReset_InvalidToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.CompleteReset(ctx, "bogus", "newpass1234", "newpass1234")

	assert.ErrorIs(t, err, auth.ErrResetTokenInvalid)
}

func TestCompleteReset_PasswordMismatchKeepsToken(t *testing.T) {
	svc, _, mailer := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupParams("testuser"))
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset(ctx, "testuser@example.com", baseURL))
	token := lastToken(t, mailer)

	_, _, err = svc.CompleteReset(ctx, token, "newpass1234", "different1234")
	assert.True(t, auth.IsValidation(err))

	// The token was not consumed and can be retried.
	_, _, err = svc.CompleteReset(ctx, token, "newpass1234", "newpass1234")
	assert.NoError(t, err)
}
