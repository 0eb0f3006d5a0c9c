package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"people-directory/pkg/logger"
	"people-directory/pkg/metrics"
)

// LoggerMiddleware records latency per route and logs each request.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		metrics.RequestDuration.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(elapsed.Seconds())

		data := map[string]interface{}{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": elapsed.String(),
			"ip":      c.IP(),
		}
		if status >= fiber.StatusBadRequest {
			logger.Warn(logger.CategoryAPI, "request", "Request failed", data)
		} else {
			logger.Debug(logger.CategoryAPI, "request", "Request handled", data)
		}
		return err
	}
}

func CorsMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Token",
	})
}
