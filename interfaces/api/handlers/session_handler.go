package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"people-directory/domain/dto"
	"people-directory/domain/services"
	"people-directory/pkg/logger"
	"people-directory/pkg/utils"
)

type SessionHandler struct {
	directoryService services.DirectoryService
	secret           string
	ttl              time.Duration
}

func NewSessionHandler(directoryService services.DirectoryService, secret string, ttlMinutes int) *SessionHandler {
	return &SessionHandler{
		directoryService: directoryService,
		secret:           secret,
		ttl:              time.Duration(ttlMinutes) * time.Minute,
	}
}

// CreateSession godoc
// @Summary Open a viewer session
// @Description Returns a session token and the initial view
// @Tags Sessions
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	id, view := h.directoryService.OpenSession(c.UserContext())

	token, err := utils.GenerateSessionToken(id, h.secret, h.ttl, time.Now())
	if err != nil {
		h.directoryService.CloseSession(id)
		logger.Error(logger.CategorySession, "token_failed", "Failed to sign session token", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to open session", err)
	}

	return utils.CreatedResponse(c, "Session opened", dto.SessionResponse{
		SessionID: id.String(),
		Token:     token,
		ExpiresIn: int(h.ttl.Seconds()),
		View:      view,
	})
}

// CloseSession godoc
// @Summary Close the current session
// @Tags Sessions
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /sessions [delete]
func (h *SessionHandler) CloseSession(c *fiber.Ctx) error {
	id, err := utils.GetSessionFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Session not found")
	}
	h.directoryService.CloseSession(id)
	return utils.SuccessResponse(c, "Session closed", nil)
}
