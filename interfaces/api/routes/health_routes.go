package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-directory/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, healthHandler *handlers.HealthHandler) {
	app.Get("/health", healthHandler.Health)
	app.Get("/health/detailed", healthHandler.DetailedHealth)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to People Directory API",
			"version": "1.0.0",
			"api":     "/api/v1",
			"health":  "/health",
			"metrics": "/metrics",
			"ws":      "/ws",
		})
	})
}
