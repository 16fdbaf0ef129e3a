// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quizdeck/internal/handlers"
	"github.com/quizdeck/quizdeck/internal/middleware"
	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
	authsvc "github.com/quizdeck/quizdeck/internal/services/auth"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, svc *authsvc.Service, repo *repository.Repository) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	authed := middleware.Authenticate(svc)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	subscribed := middleware.RequireActiveSubscription(repo)

	// Users: public auth endpoints, then self-service, then admin management.
	users := api.Group("/users")
	users.POST("/signup", h.Signup)
	users.POST("/login", h.Login)
	users.GET("/logout", h.Logout)
	users.POST("/forgotPassword", h.ForgotPassword)
	users.PATCH("/resetPassword/:token", h.ResetPassword)

	users.GET("/me", h.Me, authed)
	users.PATCH("/updateMe", h.UpdateMe, authed)
	users.DELETE("/deleteMe", h.DeleteMe, authed)
	users.PATCH("/updateMyPassword", h.UpdatePassword, authed)
	users.GET("/search", h.SearchUsers, authed)

	users.GET("", h.ListUsers, authed, adminOnly)
	users.GET("/:id", h.GetUser, authed, adminOnly)
	users.PATCH("/:id", h.UpdateUser, authed, adminOnly)
	users.DELETE("/:id", h.DeleteUser, authed, adminOnly)

	// Question bank: reads for any authenticated user, mutations for admins.
	questions := api.Group("/questions", authed)
	questions.GET("", h.ListQuestions)
	questions.GET("/:id", h.GetQuestion)
	questions.POST("", h.CreateQuestion, adminOnly)
	questions.PATCH("/:id", h.UpdateQuestion, adminOnly)
	questions.DELETE("/:id", h.DeleteQuestion, adminOnly)

	answers := api.Group("/answers", authed)
	answers.GET("", h.ListAnswers)
	answers.GET("/:id", h.GetAnswer)
	answers.POST("", h.CreateAnswer, adminOnly)
	answers.PATCH("/:id", h.UpdateAnswer, adminOnly)
	answers.DELETE("/:id", h.DeleteAnswer, adminOnly)

	// Subscriptions are managed by admins on behalf of users.
	subs := api.Group("/subscriptions", authed, adminOnly)
	subs.POST("", h.CreateSubscription)
	subs.GET("", h.ListSubscriptions)
	subs.GET("/:id", h.GetSubscription)
	subs.PATCH("/:id", h.UpdateSubscription)
	subs.DELETE("/:id", h.DeleteSubscription)

	// Tests require an active subscription on every request.
	tests := api.Group("/tests", authed, subscribed)
	tests.GET("/generate", h.GenerateTest)
	tests.GET("", h.ListTests)
	tests.GET("/:id", h.GetTest)

	// Content images for questions and answers.
	content := api.Group("/content", authed, adminOnly)
	content.POST("", h.UploadContent)
	content.GET("", h.ListContents)
	content.DELETE("/:id", h.DeleteContent)
}
