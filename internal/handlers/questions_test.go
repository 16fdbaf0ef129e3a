// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/testutil"
)

func TestCreateQuestionHandler(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	admin := testutil.NewTestAdmin(t, repo, "admin")
	e := echo.New()

	body := `{"text":"What is the capital of France?"}`
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/questions", strings.NewReader(body))
	c.SetRequest(c.Request().WithContext(auth.SetUser(c.Request().Context(), admin)))

	require.NoError(t, h.CreateQuestion(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	questions, err := repo.ListQuestions(t.Context())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, admin.ID, questions[0].CreatedBy)
}

func TestCreateQuestionHandler_MissingText(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	admin := testutil.NewTestAdmin(t, repo, "admin")
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/questions", strings.NewReader(`{}`))
	c.SetRequest(c.Request().WithContext(auth.SetUser(c.Request().Context(), admin)))

	err := h.CreateQuestion(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateAnswerHandler_RequiresCorrectness(t *testing.T) {
	h, _, _, _ := newHandlers(t)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/answers", strings.NewReader(`{"text":"Paris"}`))

	err := h.CreateAnswer(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Answer correctness must be specified", he.Message)
}

func TestCreateAnswerHandler(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	e := echo.New()

	body := `{"text":"Paris","isCorrect":true}`
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/answers", strings.NewReader(body))

	require.NoError(t, h.CreateAnswer(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	answers, err := repo.ListAnswers(t.Context())
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.True(t, answers[0].IsCorrect)
}
