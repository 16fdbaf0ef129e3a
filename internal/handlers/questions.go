// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/models"
)

type questionRequest struct {
	Text      string  `json:"text"`
	Image     string  `json:"image"`
	AnswerIDs []int64 `json:"answers"`
}

// CreateQuestion adds a question to the bank (admin).
func (h *Handlers) CreateQuestion(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Question text is required")
	}

	question := &models.Question{
		Text:      req.Text,
		Image:     req.Image,
		CreatedBy: auth.GetUser(c.Request().Context()).ID,
		AnswerIDs: req.AnswerIDs,
	}
	if err := h.repo.CreateQuestion(c.Request().Context(), question); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": question},
	})
}

// GetQuestion returns a question by ID.
func (h *Handlers) GetQuestion(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	question, err := h.repo.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": question},
	})
}

// ListQuestions returns the whole question bank.
func (h *Handlers) ListQuestions(c echo.Context) error {
	questions, err := h.repo.ListQuestions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(questions),
		"data":    echo.Map{"data": questions},
	})
}

// UpdateQuestion updates a question and its answer references (admin).
func (h *Handlers) UpdateQuestion(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	question, err := h.repo.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}

	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text != "" {
		question.Text = req.Text
	}
	if req.Image != "" {
		question.Image = req.Image
	}
	if req.AnswerIDs != nil {
		question.AnswerIDs = req.AnswerIDs
	}
	if err := h.repo.UpdateQuestion(c.Request().Context(), question); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": question},
	})
}

// DeleteQuestion removes a question (admin).
func (h *Handlers) DeleteQuestion(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.repo.DeleteQuestion(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type answerRequest struct {
	Text      string `json:"text"`
	Image     string `json:"image"`
	IsCorrect *bool  `json:"isCorrect"`
}

// CreateAnswer adds an answer (admin). Correctness must always be explicit.
func (h *Handlers) CreateAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.IsCorrect == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Answer correctness must be specified")
	}

	answer := &models.Answer{
		Text:      req.Text,
		Image:     req.Image,
		IsCorrect: *req.IsCorrect,
	}
	if err := h.repo.CreateAnswer(c.Request().Context(), answer); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": answer},
	})
}

// GetAnswer returns an answer by ID.
func (h *Handlers) GetAnswer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	answer, err := h.repo.GetAnswer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": answer},
	})
}

// ListAnswers returns all answers.
func (h *Handlers) ListAnswers(c echo.Context) error {
	answers, err := h.repo.ListAnswers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(answers),
		"data":    echo.Map{"data": answers},
	})
}

// UpdateAnswer updates an answer (admin).
func (h *Handlers) UpdateAnswer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	answer, err := h.repo.GetAnswer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text != "" {
		answer.Text = req.Text
	}
	if req.Image != "" {
		answer.Image = req.Image
	}
	if req.IsCorrect != nil {
		answer.IsCorrect = *req.IsCorrect
	}
	if err := h.repo.UpdateAnswer(c.Request().Context(), answer); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": answer},
	})
}

// DeleteAnswer removes an answer (admin).
func (h *Handlers) DeleteAnswer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.repo.DeleteAnswer(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
