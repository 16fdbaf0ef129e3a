// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
	"github.com/quizdeck/quizdeck/internal/testutil"
)

func newAnswer(t *testing.T, repo *repository.Repository, text string, correct bool) *models.Answer {
	t.Helper()
	a := &models.Answer{Text: text, IsCorrect: correct}
	require.NoError(t, repo.CreateAnswer(context.Background(), a))
	return a
}

func TestCreateQuestion_WithAnswers(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	admin := testutil.NewTestAdmin(t, repo, "admin")
	a1 := newAnswer(t, repo, "Paris", true)
	a2 := newAnswer(t, repo, "London", false)

	q := &models.Question{
		Text:      "What is the capital of France?",
		CreatedBy: admin.ID,
		AnswerIDs: []int64{a1.ID, a2.ID},
	}
	require.NoError(t, repo.CreateQuestion(ctx, q))
	assert.NotZero(t, q.ID)

	retrieved, err := repo.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, retrieved.Text)
	assert.ElementsMatch(t, []int64{a1.ID, a2.ID}, retrieved.AnswerIDs)
}

func TestUpdateQuestion_ReplacesAnswers(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	admin := testutil.NewTestAdmin(t, repo, "admin")
	a1 := newAnswer(t, repo, "Paris", true)
	a2 := newAnswer(t, repo, "London", false)
	a3 := newAnswer(t, repo, "Berlin", false)

	q := &models.Question{Text: "Capital?", CreatedBy: admin.ID, AnswerIDs: []int64{a1.ID, a2.ID}}
	require.NoError(t, repo.CreateQuestion(ctx, q))

	q.Text = "Capital of France?"
	q.AnswerIDs = []int64{a1.ID, a3.ID}
	require.NoError(t, repo.UpdateQuestion(ctx, q))

	retrieved, err := repo.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Capital of France?", retrieved.Text)
	assert.ElementsMatch(t, []int64{a1.ID, a3.ID}, retrieved.AnswerIDs)
}

func TestUpdateQuestion_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	err := repo.UpdateQuestion(ctx, &models.Question{ID: 999, Text: "x"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteQuestion_CascadesJoinRows(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	admin := testutil.NewTestAdmin(t, repo, "admin")
	a := newAnswer(t, repo, "Paris", true)
	q := &models.Question{Text: "Capital?", CreatedBy: admin.ID, AnswerIDs: []int64{a.ID}}
	require.NoError(t, repo.CreateQuestion(ctx, q))

	require.NoError(t, repo.DeleteQuestion(ctx, q.ID))

	_, err := repo.GetQuestion(ctx, q.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The answer itself survives; only the reference is gone.
	_, err = repo.GetAnswer(ctx, a.ID)
	assert.NoError(t, err)
}

func TestSampleQuestionIDs(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	admin := testutil.NewTestAdmin(t, repo, "admin")
	for range 30 {
		testutil.NewTestQuestion(t, repo, "question", admin.ID)
	}

	ids, err := repo.SampleQuestionIDs(ctx, 20)

	require.NoError(t, err)
	assert.Len(t, ids, 20)

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "sample contains duplicate id %d", id)
		seen[id] = true
	}
}

func TestSampleQuestionIDs_SmallBank(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	admin := testutil.NewTestAdmin(t, repo, "admin")
	for range 5 {
		testutil.NewTestQuestion(t, repo, "question", admin.ID)
	}

	ids, err := repo.SampleQuestionIDs(ctx, 20)

	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestAnswerCRUD(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	a := newAnswer(t, repo, "42", true)

	a.Text = "forty-two"
	a.IsCorrect = false
	require.NoError(t, repo.UpdateAnswer(ctx, a))

	retrieved, err := repo.GetAnswer(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "forty-two", retrieved.Text)
	assert.False(t, retrieved.IsCorrect)

	require.NoError(t, repo.DeleteAnswer(ctx, a.ID))
	_, err = repo.GetAnswer(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
