package websocket

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"people-directory/domain/dto"
	"people-directory/domain/services"
	wsmanager "people-directory/infrastructure/websocket"
	"people-directory/interfaces/api/handlers"
	"people-directory/pkg/logger"
	"people-directory/pkg/utils"
)

// Message types sent to clients.
const (
	MessageView  = "view"
	MessageError = "error"
)

// ErrorPayload is the data of an "error" message. View is the session's
// unchanged view when the intent reached the reducer.
type ErrorPayload struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	View    interface{} `json:"view,omitempty"`
}

type WebSocketHandler struct {
	directoryService services.DirectoryService
}

func NewWebSocketHandler(directoryService services.DirectoryService) *WebSocketHandler {
	return &WebSocketHandler{directoryService: directoryService}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	sessionID, ok := c.Locals(utils.SessionLocalsKey).(uuid.UUID)
	if !ok {
		_ = c.WriteJSON(errorMessage(fiber.StatusUnauthorized, "Session not found", nil, nil))
		return
	}

	view, err := h.directoryService.View(sessionID)
	if err != nil {
		_ = c.WriteJSON(errorMessage(handlers.StatusForError(err), "Session not found", err, nil))
		return
	}

	wsmanager.Manager.RegisterClient(c, sessionID)
	defer wsmanager.Manager.UnregisterClient(c)

	if err := wsmanager.Manager.Send(c, dto.WSMessage{Type: MessageView, Data: view}); err != nil {
		logger.WebSocketError("initial_view", "Failed to send initial view", err, map[string]interface{}{"session_id": sessionID.String()})
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug(logger.CategoryWebSocket, "read_message", "WebSocket closed", map[string]interface{}{
				"session_id": sessionID.String(),
				"error":      err.Error(),
			})
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		reply := h.HandleMessage(sessionID, message)
		if err := wsmanager.Manager.Send(c, reply); err != nil {
			logger.WebSocketError("write_message", "WebSocket write error", err, map[string]interface{}{"session_id": sessionID.String()})
			break
		}
		if SessionGone(reply) {
			logger.WebSocket("session_gone", "Session expired, closing connection", map[string]interface{}{"session_id": sessionID.String()})
			break
		}
	}
}

// HandleMessage decodes one intent, dispatches it and returns the reply.
func (h *WebSocketHandler) HandleMessage(sessionID uuid.UUID, raw []byte) dto.WSMessage {
	var req dto.IntentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorMessage(fiber.StatusBadRequest, "Invalid message", err, nil)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return dto.WSMessage{Type: MessageError, Data: fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Validation failed",
			"errors":  errs,
		}}
	}
	intent, err := req.ToIntent()
	if err != nil {
		return errorMessage(fiber.StatusUnprocessableEntity, "Invalid intent", err, nil)
	}

	view, err := h.directoryService.Dispatch(context.Background(), sessionID, intent)
	if err != nil {
		status := handlers.StatusForError(err)
		if status == fiber.StatusUnauthorized {
			return errorMessage(status, "Session not found", err, nil)
		}
		return errorMessage(status, "Intent rejected", err, view)
	}
	return dto.WSMessage{Type: MessageView, Data: view}
}

// SessionGone reports whether reply tells the client its session no longer exists.
func SessionGone(reply dto.WSMessage) bool {
	payload, ok := reply.Data.(ErrorPayload)
	return ok && reply.Type == MessageError && payload.Status == fiber.StatusUnauthorized
}

func errorMessage(status int, message string, err error, view interface{}) dto.WSMessage {
	payload := ErrorPayload{Status: status, Message: message, View: view}
	if err != nil {
		payload.Error = err.Error()
	}
	return dto.WSMessage{Type: MessageError, Data: payload}
}
