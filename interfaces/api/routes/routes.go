package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-directory/domain/services"
	"people-directory/interfaces/api/handlers"
	"people-directory/interfaces/api/middleware"
	"people-directory/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, directoryService services.DirectoryService, cfg *config.Config) {
	SetupHealthRoutes(app, h.Health)
	SetupMetricsRoutes(app)

	api := app.Group("/api/v1", middleware.RateLimiter(&cfg.RateLimit))

	SetupDirectoryRoutes(api, h, cfg.JWT.Secret)
	SetupLogRoutes(api, h)

	// websocket needs the app, not the api group
	SetupWebSocketRoutes(app, directoryService, cfg.JWT.Secret)
}
