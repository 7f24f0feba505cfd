package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/comedorlabs/comedor-server/internal/logger"
)

// Logging logs each HTTP request with method, path, status and duration.
func Logging(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		log.Info("HTTP request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.Locals("requestid"))

		if err != nil {
			log.Error("HTTP request failed",
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error())
		}

		return err
	}
}
