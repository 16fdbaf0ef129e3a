// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/auth"
)

// Me returns the authenticated user.
func (h *Handlers) Me(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// updateMeRequest is the explicit allow-list of self-service fields.
// Anything else in the body is ignored; password fields are rejected.
type updateMeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Photo    string `json:"photo"`
	Password string `json:"password"`
}

// UpdateMe updates the profile fields of the authenticated user.
func (h *Handlers) UpdateMe(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Password != "" {
		return echo.NewHTTPError(http.StatusBadRequest,
			"This route is not for password updates. Please use /updateMyPassword instead.")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Photo != "" {
		user.Photo = req.Photo
	}
	if err := h.repo.UpdateUser(c.Request().Context(), user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// DeleteMe soft-deletes the authenticated user.
func (h *Handlers) DeleteMe(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if err := h.repo.DeactivateUser(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchUsers performs a case-insensitive username search.
func (h *Handlers) SearchUsers(c echo.Context) error {
	query := c.QueryParam("userName")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide a username to search for")
	}

	users, err := h.repo.SearchUsersByUsername(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"users": users},
	})
}

// GetUser returns a user by ID (admin).
func (h *Handlers) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.repo.GetUserByID(c.Request().Context(), id, false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// ListUsers returns all active users (admin).
func (h *Handlers) ListUsers(c echo.Context) error {
	users, err := h.repo.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(users),
		"data":    echo.Map{"users": users},
	})
}

// UpdateUser updates a user's profile fields by ID (admin). Passwords are
// never updated through this route.
func (h *Handlers) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.repo.GetUserByID(c.Request().Context(), id, false)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Photo != "" {
		user.Photo = req.Photo
	}
	if err := h.repo.UpdateUser(c.Request().Context(), user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// DeleteUser removes a user by ID (admin).
func (h *Handlers) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.repo.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
