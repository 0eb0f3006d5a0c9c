package handlers

import (
	"github.com/gofiber/fiber/v2"

	"people-directory/domain/dto"
	"people-directory/domain/services"
	"people-directory/pkg/utils"
)

type DirectoryHandler struct {
	directoryService services.DirectoryService
}

func NewDirectoryHandler(directoryService services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// GetView godoc
// @Summary Get the rendered view of the current session
// @Tags Directory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} viewmodel.View
// @Router /view [get]
func (h *DirectoryHandler) GetView(c *fiber.Ctx) error {
	id, err := utils.GetSessionFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Session not found")
	}

	view, err := h.directoryService.View(id)
	if err != nil {
		return utils.ErrorResponse(c, StatusForError(err), messageForStatus(StatusForError(err)), err)
	}
	return utils.SuccessResponse(c, "View retrieved", view)
}

// Dispatch godoc
// @Summary Apply an intent to the current session
// @Description Mutating intents are written through to the store before they take effect
// @Tags Directory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.IntentRequest true "Intent"
// @Success 200 {object} viewmodel.View
// @Router /intents [post]
func (h *DirectoryHandler) Dispatch(c *fiber.Ctx) error {
	id, err := utils.GetSessionFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Session not found")
	}

	var req dto.IntentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}
	intent, err := req.ToIntent()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Invalid intent", err)
	}

	view, err := h.directoryService.Dispatch(c.UserContext(), id, intent)
	if err != nil {
		status := StatusForError(err)
		if status == fiber.StatusUnauthorized {
			return utils.ErrorResponse(c, status, messageForStatus(status), err)
		}
		return utils.ErrorResponseWithData(c, status, messageForStatus(status), err, view)
	}
	return utils.SuccessResponse(c, "Intent applied", view)
}

// ListRecords godoc
// @Summary List records with derived ages
// @Tags Directory
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {array} dto.PersonResponse
// @Router /records [get]
func (h *DirectoryHandler) ListRecords(c *fiber.Ctx) error {
	records := h.directoryService.ListRecords(c.Query("search"))
	return utils.SuccessResponse(c, "Records retrieved", fiber.Map{
		"records": records,
		"count":   len(records),
	})
}
