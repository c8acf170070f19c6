package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowbit/helpdesk/internal/api/http/handlers"
	"github.com/flowbit/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration. Health and
// RateLimiter are optional so transport tests can run without live
// infrastructure.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Screens        *handlers.ScreensHandler
	Tenants        *handlers.TenantsHandler
	Webhook        *handlers.WebhookHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	if cfg.RateLimiter != nil {
		authGroup.Post("/register", cfg.RateLimiter, cfg.Auth.Register)
		authGroup.Post("/login", cfg.RateLimiter, cfg.Auth.Login)
	} else {
		authGroup.Post("/register", cfg.Auth.Register)
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Put("/:id/assign", cfg.Tickets.Assign)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	api.Get("/screens", cfg.AuthMiddleware.Handle, cfg.Screens.List)
	api.Get("/tenants", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Tenants.List)

	app.Post("/webhook/ticket-done", cfg.Webhook.TicketDone)
}
