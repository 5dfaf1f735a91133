package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admissions-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Applicants *handlers.ApplicantsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/submit", cfg.Applicants.Submit)
	app.Post("/login", cfg.Applicants.Login)
	app.Get("/applicants", cfg.Applicants.List)
	app.Post("/accept", cfg.Applicants.Accept)
}
