package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/request-desk/internal/api/http/handlers"
	"github.com/spec-kit/request-desk/internal/auth"
	"github.com/spec-kit/request-desk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	Comments       *handlers.CommentsHandler
	Categories     *handlers.CategoriesHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Optional, cfg.Auth.Me)

	requests := app.Group("/requests", cfg.AuthMiddleware.Handle)
	requests.Get("/", cfg.Requests.ListRequests)
	requests.Post("/", cfg.Requests.CreateRequest)
	requests.Get("/stats", cfg.Requests.Stats)
	requests.Get("/:id", cfg.Requests.GetRequest)
	requests.Patch("/:id", cfg.Requests.UpdateStatus)
	requests.Get("/:id/comments", cfg.Comments.ListComments)
	requests.Post("/:id/comments", cfg.Comments.AddComment)

	app.Get("/categories", cfg.AuthMiddleware.Handle, cfg.Categories.ListCategories)
}
