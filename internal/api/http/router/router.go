package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/comedorlabs/comedor-server/internal/api/http/handler"
	"github.com/comedorlabs/comedor-server/internal/api/http/middleware"
	"github.com/comedorlabs/comedor-server/internal/logger"
)

// New builds the Fiber application with all routes registered.
func New(
	entry *handler.Entry,
	shift *handler.Shift,
	report *handler.Report,
	log *logger.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(compress.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())
	app.Use(middleware.Logging(log))

	api := app.Group("/api/v1")

	api.Post("/entries", entry.Record)

	api.Get("/shifts", shift.List)
	api.Post("/shifts", shift.Create)
	api.Put("/shifts/:id", shift.Update)
	api.Delete("/shifts/:id", shift.Delete)

	reports := api.Group("/reports")
	reports.Get("/hourly", report.Hourly)
	reports.Get("/departments", report.ByDepartment)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	return app
}
