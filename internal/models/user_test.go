// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quizdeck/quizdeck/internal/models"
)

func TestChangedPasswordAfter(t *testing.T) {
	now := time.Now()

	user := &models.User{}
	assert.False(t, user.ChangedPasswordAfter(now.Unix()), "never-changed password is never stale")

	changedAt := now
	user.PasswordChangedAt = &changedAt
	assert.True(t, user.ChangedPasswordAfter(now.Add(-time.Minute).Unix()), "token issued before change is stale")
	assert.False(t, user.ChangedPasswordAfter(now.Unix()), "token issued at the change instant is not stale")
	assert.False(t, user.ChangedPasswordAfter(now.Add(time.Minute).Unix()), "token issued after change is not stale")
}

func TestSubscriptionActiveAt(t *testing.T) {
	now := time.Now()
	sub := &models.Subscription{EndDate: now}

	assert.True(t, sub.ActiveAt(now), "end date exactly now is still active")
	assert.True(t, sub.ActiveAt(now.Add(-time.Hour)))
	assert.False(t, sub.ActiveAt(now.Add(time.Hour)))
}
