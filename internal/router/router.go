package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/hr-interviewer-api/internal/config"
	"github.com/noah-isme/hr-interviewer-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	InterviewHandler *handler.InterviewHandler
	MetricsHandler   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", handler.ServiceInfo(cfg))

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.InterviewHandler != nil {
		deps.InterviewHandler.Register(app)
	}

	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}
}
