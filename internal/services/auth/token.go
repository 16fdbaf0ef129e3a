// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quizdeck/quizdeck/internal/config"
)

// Claims are the statements embedded in a session token: the user identity
// plus the registered issue and expiry times.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// TokenService issues and verifies signed, time-bound session tokens. The
// signing secret and expiry are injected at construction and never read
// from ambient state.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg *config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.TokenExpiry(),
	}
}

// Issue mints an HS256-signed token for the given user.
func (t *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		UserID: userID,
	})
	return token.SignedString(t.secret)
}

// Verify parses and validates a token, returning its claims. A bad
// signature or malformed token yields ErrTokenInvalid, an elapsed expiry
// ErrTokenExpired. Staleness against the password-change time is checked
// separately once the user is resolved.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
