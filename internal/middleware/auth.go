// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware implements the authentication and authorization gates.
package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/repository"
	authsvc "github.com/quizdeck/quizdeck/internal/services/auth"
)

// CookieName is the session cookie the token is also accepted from.
const CookieName = "jwt"

// Authenticate extracts the session token from the bearer header or the
// jwt cookie, verifies it, resolves the user and rejects tokens issued
// before the most recent password change. On success the user is attached
// to the request context for the downstream gates and handlers.
func Authenticate(svc *authsvc.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized,
					"You are not logged in! Please log in to get access.")
			}

			user, err := svc.ResolveToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, resolveMessage(err))
			}

			c.SetRequest(c.Request().WithContext(auth.SetUser(c.Request().Context(), user)))
			return next(c)
		}
	}
}

// OptionalUser resolves a user like Authenticate but downgrades every
// failure to "anonymous". Only for surfaces that render differently for
// logged-in users, never for protected mutations.
func OptionalUser(svc *authsvc.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if user, err := svc.ResolveToken(c.Request().Context(), token); err == nil {
					c.SetRequest(c.Request().WithContext(auth.SetUser(c.Request().Context(), user)))
				}
			}
			return next(c)
		}
	}
}

// RequireRole admits only users whose role is in the allow-list. The check
// is literal set membership: admin is not implicitly a superset of user.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := auth.GetUser(c.Request().Context())
			if user == nil || !slices.Contains(roles, user.Role) {
				return echo.NewHTTPError(http.StatusForbidden,
					"You do not have permission to perform this action")
			}
			return next(c)
		}
	}
}

// RequireActiveSubscription admits only users owning a subscription whose
// end date has not passed, evaluated at request time.
func RequireActiveSubscription(repo *repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := auth.GetUser(c.Request().Context())
			if user == nil {
				return echo.NewHTTPError(http.StatusForbidden,
					"You do not have an active subscription to access this resource")
			}
			_, err := repo.GetActiveSubscription(c.Request().Context(), user.ID, time.Now())
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return echo.NewHTTPError(http.StatusForbidden,
						"You do not have an active subscription to access this resource")
				}
				return err
			}
			return next(c)
		}
	}
}

// extractToken reads the token from "Authorization: Bearer <token>" or,
// failing that, from the jwt cookie.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func resolveMessage(err error) string {
	switch {
	case errors.Is(err, authsvc.ErrUserGone):
		return "The user belonging to this token does no longer exist"
	case errors.Is(err, authsvc.ErrStaleToken):
		return "User recently changed password! Please log in again"
	case errors.Is(err, authsvc.ErrTokenExpired):
		return "Your session has expired! Please log in again"
	default:
		return "Invalid token. Please log in again"
	}
}
