// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/models"
)

type subscriptionRequest struct {
	UserID      int64      `json:"user"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Plan        string     `json:"plan"`
	Price       *float64   `json:"price"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func validPlan(plan string) bool {
	switch plan {
	case models.PlanDaily, models.PlanWeekly, models.PlanMonthly:
		return true
	}
	return false
}

// CreateSubscription records a subscription for a user (admin).
func (h *Handlers) CreateSubscription(c echo.Context) error {
	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide the ID of the user")
	}
	if !validPlan(req.Plan) {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide the plan of your choice")
	}
	if req.Price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide the price for the subscription")
	}
	if req.EndDate == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide the end date for the subscription")
	}

	sub := &models.Subscription{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Plan:        req.Plan,
		Price:       *req.Price,
		EndDate:     *req.EndDate,
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if err := h.repo.CreateSubscription(c.Request().Context(), sub); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": sub},
	})
}

// GetSubscription returns a subscription by ID (admin).
func (h *Handlers) GetSubscription(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	sub, err := h.repo.GetSubscription(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": sub},
	})
}

// ListSubscriptions returns all subscriptions (admin).
func (h *Handlers) ListSubscriptions(c echo.Context) error {
	subs, err := h.repo.ListSubscriptions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(subs),
		"data":    echo.Map{"data": subs},
	})
}

// UpdateSubscription updates a subscription (admin).
func (h *Handlers) UpdateSubscription(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	sub, err := h.repo.GetSubscription(c.Request().Context(), id)
	if err != nil {
		return err
	}

	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID != 0 {
		sub.UserID = req.UserID
	}
	if req.Title != "" {
		sub.Title = req.Title
	}
	if req.Description != "" {
		sub.Description = req.Description
	}
	if req.Plan != "" {
		if !validPlan(req.Plan) {
			return echo.NewHTTPError(http.StatusBadRequest, "Please provide the plan of your choice")
		}
		sub.Plan = req.Plan
	}
	if req.Price != nil {
		sub.Price = *req.Price
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		sub.EndDate = *req.EndDate
	}
	if err := h.repo.UpdateSubscription(c.Request().Context(), sub); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": sub},
	})
}

// DeleteSubscription removes a subscription (admin).
func (h *Handlers) DeleteSubscription(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.repo.DeleteSubscription(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
