package routes

import (
	"github.com/gofiber/fiber/v2"

	"people-directory/interfaces/api/handlers"
	"people-directory/interfaces/api/middleware"
)

func SetupDirectoryRoutes(router fiber.Router, h *handlers.Handlers, secret string) {
	session := middleware.RequireSession(secret)

	router.Post("/sessions", h.Session.CreateSession)
	router.Delete("/sessions", session, h.Session.CloseSession)

	router.Get("/view", session, h.Directory.GetView)
	router.Post("/intents", session, h.Directory.Dispatch)

	router.Get("/records", h.Directory.ListRecords)
}
