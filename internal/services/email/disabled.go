// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email

import (
	"context"
	"errors"

	"github.com/quizdeck/quizdeck/internal/models"
)

// Disabled is the mailer used when SMTP is not configured. Every send
// fails, which lets the caller roll back reset state instead of leaving
// a token nobody will ever receive.
type Disabled struct{}

func (Disabled) SendPasswordReset(_ context.Context, _ *models.User, _ string) error {
	return errors.New("email delivery is not configured")
}
