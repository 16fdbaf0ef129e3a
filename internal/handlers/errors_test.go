// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/quizdeck/quizdeck/internal/handlers"
	"github.com/quizdeck/quizdeck/internal/repository"
	"github.com/quizdeck/quizdeck/internal/testutil"
)

func TestHTTPErrorHandler_ClientError(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)

	handlers.HTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "bad input"), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"fail","message":"bad input"}`, rec.Body.String())
}

func TestHTTPErrorHandler_NotFound(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)

	handlers.HTTPErrorHandler(repository.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"fail","message":"No document found with that ID"}`, rec.Body.String())
}

func TestHTTPErrorHandler_ServerError(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)

	handlers.HTTPErrorHandler(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal details never leak into the response body.
	assert.JSONEq(t, `{"status":"error","message":"Something went wrong"}`, rec.Body.String())
}
