// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers for the JSON API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/config"
	"github.com/quizdeck/quizdeck/internal/repository"
	authsvc "github.com/quizdeck/quizdeck/internal/services/auth"
	"github.com/quizdeck/quizdeck/internal/services/testgen"
	"github.com/quizdeck/quizdeck/internal/storage/s3"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	repo    *repository.Repository
	auth    *authsvc.Service
	testgen *testgen.Service
	store   *s3.Storage // nil when content storage is not configured
	authCfg *config.AuthConfig
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, auth *authsvc.Service, testgen *testgen.Service, store *s3.Storage, authCfg *config.AuthConfig) *Handlers {
	return &Handlers{
		repo:    repo,
		auth:    auth,
		testgen: testgen,
		store:   store,
		authCfg: authCfg,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
