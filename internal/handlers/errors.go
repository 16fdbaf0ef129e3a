// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/repository"
)

// HTTPErrorHandler renders every error as the JSON envelope the API uses:
// {"status": "fail"|"error", "message": ...}. Client errors are "fail",
// server errors are "error".
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
		message = "No document found with that ID"
	default:
		slog.Error("request_failed", "error", err, "uri", c.Request().RequestURI)
	}

	status := "error"
	if code >= 400 && code < 500 {
		status = "fail"
	}

	if jsonErr := c.JSON(code, echo.Map{"status": status, "message": message}); jsonErr != nil {
		slog.Error("failed to write error response", "error", jsonErr)
	}
}
