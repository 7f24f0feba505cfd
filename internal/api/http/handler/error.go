package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
	"github.com/comedorlabs/comedor-server/internal/service"
)

// handleError maps service and store errors to HTTP responses. 503 is the
// only status callers may retry; every other status is a terminal decision.
func handleError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	// Checked first: a store failure may carry another sentinel in its
	// chain, and the caller must see the retryable status in that case.
	case errors.Is(err, model.ErrStoreUnavailable):
		log.Error("store unavailable", "error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":     "store_unavailable",
			"retryable": true,
		})
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not_found",
		})
	case errors.Is(err, model.ErrShiftHasEntries):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "has_dependent_entries",
		})
	case errors.Is(err, service.ErrEmptyShiftLabel), errors.Is(err, service.ErrEmptyWindow):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_shift",
			"message": err.Error(),
		})
	default:
		log.Error("unexpected error", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error",
		})
	}
}
