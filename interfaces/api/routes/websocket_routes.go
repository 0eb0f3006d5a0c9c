package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"people-directory/domain/services"
	"people-directory/interfaces/api/middleware"
	websocketHandler "people-directory/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, directoryService services.DirectoryService, secret string) {
	wsHandler := websocketHandler.NewWebSocketHandler(directoryService)

	// browsers cannot set headers on the upgrade, so the token may come as ?token=
	app.Use("/ws", middleware.RequireSessionWithQueryToken(secret), wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
