package middleware

import (
	"github.com/gofiber/fiber/v2"

	"people-directory/pkg/logger"
	"people-directory/pkg/utils"
)

// RequireSession validates the session token from the Authorization header
// and stores the session id in the request locals.
func RequireSession(secret string) fiber.Handler {
	return sessionHandler(secret, false)
}

// RequireSessionWithQueryToken also accepts ?token=, for websocket upgrades
// where browsers cannot set headers.
func RequireSessionWithQueryToken(secret string) fiber.Handler {
	return sessionHandler(secret, true)
}

func sessionHandler(secret string, allowQuery bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		if authHeader := c.Get("Authorization"); authHeader != "" {
			token = utils.ExtractTokenFromHeader(authHeader)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Invalid authorization header format")
			}
		}
		if token == "" && allowQuery {
			token = c.Query("token")
		}

		sessionID, err := utils.ValidateSessionToken(token, secret)
		if err != nil {
			logger.Debug(logger.CategorySession, "token_rejected", "Session token rejected", map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
			})
			switch err {
			case utils.ErrExpiredToken:
				return utils.UnauthorizedResponse(c, "Session token has expired")
			case utils.ErrMissingToken:
				return utils.UnauthorizedResponse(c, "Missing session token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid session token")
			}
		}

		c.Locals(utils.SessionLocalsKey, sessionID)
		return c.Next()
	}
}
