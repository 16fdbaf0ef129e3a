// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the application together and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"github.com/quizdeck/quizdeck/internal/config"
	"github.com/quizdeck/quizdeck/internal/database"
	"github.com/quizdeck/quizdeck/internal/handlers"
	"github.com/quizdeck/quizdeck/internal/repository"
	authsvc "github.com/quizdeck/quizdeck/internal/services/auth"
	"github.com/quizdeck/quizdeck/internal/services/email"
	"github.com/quizdeck/quizdeck/internal/services/testgen"
	"github.com/quizdeck/quizdeck/internal/storage/s3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// Repository
	repo := repository.New(db)

	// Mailer; without SMTP the forgot-password flow degrades to an error
	// response instead of silently dropping tokens.
	var mailer authsvc.Mailer
	if smtp, mailErr := email.NewService(&cfg.SMTP); mailErr == nil {
		mailer = smtp
	} else {
		slog.Warn("email delivery disabled", "reason", mailErr)
		mailer = email.Disabled{}
	}

	// Content storage is optional.
	var store *s3.Storage
	if cfg.S3.Bucket != "" {
		store, err = s3.New(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to set up content storage: %w", err)
		}
	} else {
		slog.Warn("content storage disabled: no s3 bucket configured")
	}

	// Services
	tokens := authsvc.NewTokenService(&cfg.Auth)
	auth := authsvc.NewService(repo, tokens, mailer)
	tests := testgen.NewService(repo)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	setupMiddleware(e)

	// Routes
	h := handlers.New(repo, auth, tests, store, &cfg.Auth)
	setupRoutes(e, h, auth, repo)

	// Start server
	return startWithGracefulShutdown(e, cfg)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
