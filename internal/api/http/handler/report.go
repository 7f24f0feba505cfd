package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
	"github.com/comedorlabs/comedor-server/internal/service"
)

// Report serves the dashboard aggregates.
type Report struct {
	reports  *service.Report
	location *time.Location
	logger   *logger.Logger
}

func NewReport(reports *service.Report, location *time.Location, logger *logger.Logger) *Report {
	return &Report{
		reports:  reports,
		location: location,
		logger:   logger,
	}
}

// Hourly returns 24 buckets for the requested date, today by default.
func (h *Report) Hourly(c *fiber.Ctx) error {
	date, err := h.reportDate(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_date",
		})
	}

	buckets, err := h.reports.Hourly(c.UserContext(), date)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"date":  date,
		"hours": buckets,
	})
}

// ByDepartment returns per-department counts for the requested date,
// today by default, sorted descending.
func (h *Report) ByDepartment(c *fiber.Ctx) error {
	date, err := h.reportDate(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_date",
		})
	}

	counts, err := h.reports.ByDepartment(c.UserContext(), date)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"date":        date,
		"departments": counts,
	})
}

func (h *Report) reportDate(c *fiber.Ctx) (model.Date, error) {
	raw := c.Query("date")
	if raw == "" {
		return model.DateOf(time.Now().In(h.location)), nil
	}
	return model.ParseDate(raw)
}
