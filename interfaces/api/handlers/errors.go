package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"people-directory/domain/services"
	"people-directory/domain/viewmodel"
)

// StatusForError maps directory errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, viewmodel.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, viewmodel.ErrEditNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, viewmodel.ErrNotEditing), errors.Is(err, viewmodel.ErrNoChanges):
		return fiber.StatusConflict
	case errors.Is(err, viewmodel.ErrFieldReadOnly),
		errors.Is(err, viewmodel.ErrUnknownField),
		errors.Is(err, viewmodel.ErrInvalidGender),
		errors.Is(err, viewmodel.ErrUnknownIntent):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func messageForStatus(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "Session not found"
	case fiber.StatusNotFound:
		return "Record not found"
	case fiber.StatusForbidden:
		return "Record cannot be edited"
	case fiber.StatusConflict:
		return "Intent not applicable"
	case fiber.StatusUnprocessableEntity:
		return "Invalid intent"
	}
	return "Failed to apply intent"
}
