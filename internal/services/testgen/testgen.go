// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testgen assembles tests from random samples of the question bank.
package testgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
)

// SampleSize is the number of questions drawn into a generated test.
const SampleSize = 20

// Service generates tests for subscribed users.
type Service struct {
	repo *repository.Repository
}

// NewService creates a test generation service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// GenerateForUser draws a uniform random sample of SampleSize questions
// without replacement and persists it as a new test owned by the user.
// A bank holding fewer than SampleSize questions produces a test with all
// available questions rather than an error. Repeats across separate calls
// are allowed; nothing deduplicates against a user's earlier tests.
func (s *Service) GenerateForUser(ctx context.Context, userID int64) (*models.Test, error) {
	ids, err := s.repo.SampleQuestionIDs(ctx, SampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}

	test := &models.Test{
		Title:       "Test",
		CreatedBy:   userID,
		QuestionIDs: ids,
	}
	if err := s.repo.CreateTest(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	slog.Info("test_generated", "test_id", test.ID, "user_id", userID, "questions", len(ids))
	return test, nil
}
