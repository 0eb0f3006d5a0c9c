package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"people-directory/pkg/logger"
	"people-directory/pkg/utils"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error(logger.CategoryAPI, "error_handler", "Request error occurred", err, map[string]interface{}{"status_code": code, "path": c.Path(), "method": c.Method()})
		}

		return utils.ErrorResponse(c, code, "An error occurred", err)
	}
}
