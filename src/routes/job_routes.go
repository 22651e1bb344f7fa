package routes

import (
	"github.com/gofiber/fiber/v2"
)

func jobRoutes(router fiber.Router, h Handlers) {
	jobs := router.Group("/jobs", h.Auth)

	jobs.Post("/sweep", h.Jobs.TriggerSweep)
	jobs.Post("/sweep/run-now", h.Jobs.RunSweepNow)
}
