package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-directory/interfaces/api/handlers"
)

// SetupLogRoutes sets up log-related routes
func SetupLogRoutes(router fiber.Router, h *handlers.Handlers) {
	admin := router.Group("/admin")

	// admin token in X-Admin-Token header or ?token=
	admin.Get("/logs", h.Log.GetLogs)
	admin.Get("/logs/files", h.Log.GetLogFiles)
	admin.Get("/logs/stats", h.Log.GetLogStats)
}
