// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/auth"
)

// GenerateTest assembles a new random test for the authenticated,
// subscribed user.
func (h *Handlers) GenerateTest(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	test, err := h.testgen.GenerateForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": test},
	})
}

// GetTest returns a test by ID.
func (h *Handlers) GetTest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	test, err := h.repo.GetTest(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": test},
	})
}

// ListTests returns all generated tests; an empty collection is a 404 to
// match the original contract.
func (h *Handlers) ListTests(c echo.Context) error {
	tests, err := h.repo.ListTests(c.Request().Context())
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No tests found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(tests),
		"data":    echo.Map{"data": tests},
	})
}
