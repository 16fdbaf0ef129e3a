// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/models"
)

// UploadContent stores an image in the object store and records it (admin).
// The returned URL can be used as the image field of questions and answers.
func (h *Handlers) UploadContent(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "content storage is not configured")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide an image file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Not an image! Please upload only images")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	key := "content/" + uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	url, err := h.store.Upload(c.Request().Context(), key, contentType, src)
	if err != nil {
		return err
	}

	content := &models.Content{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		UploadedBy:  auth.GetUser(c.Request().Context()).ID,
	}
	if err := h.repo.CreateContent(c.Request().Context(), content); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"data": content},
	})
}

// ListContents returns all uploaded content records (admin).
func (h *Handlers) ListContents(c echo.Context) error {
	contents, err := h.repo.ListContents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(contents),
		"data":    echo.Map{"data": contents},
	})
}

// DeleteContent removes an uploaded object and its record (admin).
func (h *Handlers) DeleteContent(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "content storage is not configured")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}
	content, err := h.repo.GetContent(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.store.Delete(c.Request().Context(), content.Key); err != nil {
		return err
	}
	if err := h.repo.DeleteContent(c.Request().Context(), content.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
