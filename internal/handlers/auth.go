// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/middleware"
	"github.com/quizdeck/quizdeck/internal/models"
	authsvc "github.com/quizdeck/quizdeck/internal/services/auth"
)

type signupRequest struct {
	Name            string `json:"name"`
	Username        string `json:"userName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Role            string `json:"role"`
}

// Signup registers a new user and logs them in.
func (h *Handlers) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.auth.Signup(c.Request().Context(), authsvc.SignupParams{
		Name:            req.Name,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
	})
	if err != nil {
		if authsvc.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return h.issueSession(c, user, http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

// Login authenticates by username and password and sets the session cookie.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide username!")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide password!")
	}

	user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) || errors.Is(err, authsvc.ErrMissingCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
		}
		return err
	}

	return h.issueSession(c, user, http.StatusOK)
}

// Logout overwrites the session cookie with a short-lived dummy value.
func (h *Handlers) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts the reset flow by emailing a one-time reset link.
// An unknown email yields a 404; this leaks whether an address is
// registered and is kept for contract compatibility.
func (h *Handlers) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	baseURL := c.Scheme() + "://" + c.Request().Host
	if err := h.auth.RequestReset(c.Request().Context(), req.Email, baseURL); err != nil {
		switch {
		case errors.Is(err, authsvc.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "There is no user with that email address.")
		case errors.Is(err, authsvc.ErrEmailSend):
			return echo.NewHTTPError(http.StatusInternalServerError, "There was an error sending the email. Try again later!")
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Token sent to email!",
	})
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ResetPassword consumes a reset token and logs the user in with a fresh
// session token.
func (h *Handlers) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.auth.CompleteReset(c.Request().Context(), c.Param("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		if errors.Is(err, authsvc.ErrResetTokenInvalid) || authsvc.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"token":  token,
		"data":   echo.Map{"user": user},
	})
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdatePassword changes the password of the authenticated user and
// re-issues the session.
func (h *Handlers) UpdatePassword(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Your current password is wrong")
		}
		if authsvc.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return h.issueSession(c, user, http.StatusOK)
}

// issueSession mints a session token, sets the jwt cookie and writes the
// token plus the user in the response body.
func (h *Handlers) issueSession(c echo.Context, user *models.User, statusCode int) error {
	token, err := h.auth.Tokens().Issue(user.ID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)
	return c.JSON(statusCode, echo.Map{
		"status": "success",
		"token":  token,
		"data":   echo.Map{"user": user},
	})
}

// setSessionCookie sets the jwt cookie: httpOnly always, secure when the
// request arrived over TLS (directly or via a proxy).
func (h *Handlers) setSessionCookie(c echo.Context, token string) {
	secure := c.IsTLS() || c.Request().Header.Get("X-Forwarded-Proto") == "https"
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authCfg.CookieExpiry()),
		HttpOnly: true,
		Secure:   secure,
	})
}
