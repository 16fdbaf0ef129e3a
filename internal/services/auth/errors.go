// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import "errors"

var (
	ErrMissingCredentials = errors.New("please provide username and password")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserNotFound       = errors.New("there is no user with that email address")
	ErrTokenInvalid       = errors.New("invalid session token")
	ErrTokenExpired       = errors.New("session token has expired")
	ErrStaleToken         = errors.New("password was changed after the token was issued")
	ErrUserGone           = errors.New("the user belonging to this token no longer exists")
	ErrResetTokenInvalid  = errors.New("token is invalid or has expired")
	ErrEmailSend          = errors.New("there was an error sending the email, try again later")
)

// ValidationError reports a missing or duplicate signup field with a
// user-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a signup validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
