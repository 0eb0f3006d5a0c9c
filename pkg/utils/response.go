package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes a failure envelope. err may be nil.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}

// ErrorResponseWithData is ErrorResponse carrying a payload, e.g. the
// unchanged view after a rejected intent.
func ErrorResponseWithData(c *fiber.Ctx, status int, message string, err error, data interface{}) error {
	resp := Response{
		Success: false,
		Message: message,
		Data:    data,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Response{
		Success: false,
		Message: message,
		Error:   "Unauthorized",
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
