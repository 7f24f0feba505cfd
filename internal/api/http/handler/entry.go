package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
	"github.com/comedorlabs/comedor-server/internal/service"
)

// Entry handles kiosk scan submissions.
type Entry struct {
	access *service.Access
	logger *logger.Logger
}

func NewEntry(access *service.Access, logger *logger.Logger) *Entry {
	return &Entry{
		access: access,
		logger: logger,
	}
}

type recordEntryRequest struct {
	UserID string `json:"user_id"`
}

// Record evaluates one scan. The entry timestamp is the server clock; any
// timestamp in the request body is ignored.
func (h *Entry) Record(c *fiber.Ctx) error {
	var input recordEntryRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad_json",
		})
	}
	if input.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "user_id is required",
		})
	}

	result, err := h.access.RecordEntry(c.UserContext(), input.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	switch result.Status {
	case service.EntryAccepted:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":   result.Status,
			"shift":    result.ShiftLabel,
			"entry_id": result.Entry.ID,
			"time":     result.Entry.Time.String(),
		})
	case service.EntryAlreadyRegistered:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":        result.Status,
			"shift":         result.ShiftLabel,
			"registered_at": model.TimeOfDayOf(result.RegisteredAt).String(),
		})
	default:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": result.Status,
		})
	}
}
