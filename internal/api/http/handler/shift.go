package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
	"github.com/comedorlabs/comedor-server/internal/service"
)

// Shift handles the shift catalog admin surface.
type Shift struct {
	shifts *service.Shift
	logger *logger.Logger
}

func NewShift(shifts *service.Shift, logger *logger.Logger) *Shift {
	return &Shift{
		shifts: shifts,
		logger: logger,
	}
}

type shiftRequest struct {
	Label  string          `json:"label"`
	Start  model.TimeOfDay `json:"start"`
	End    model.TimeOfDay `json:"end"`
	Active bool            `json:"active"`
}

func (h *Shift) List(c *fiber.Ctx) error {
	shifts, err := h.shifts.List(c.UserContext())
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(shifts)
}

func (h *Shift) Create(c *fiber.Ctx) error {
	var input shiftRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad_json",
		})
	}

	created, err := h.shifts.Create(c.UserContext(), service.ShiftParams{
		Label:  input.Label,
		Start:  input.Start,
		End:    input.End,
		Active: input.Active,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Shift) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_shift_id",
		})
	}

	var input shiftRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad_json",
		})
	}

	updated, err := h.shifts.Update(c.UserContext(), id, service.ShiftParams{
		Label:  input.Label,
		Start:  input.Start,
		End:    input.End,
		Active: input.Active,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(updated)
}

func (h *Shift) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_shift_id",
		})
	}

	if err := h.shifts.Delete(c.UserContext(), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
