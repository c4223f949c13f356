package stats

import (
	"github.com/gofiber/fiber/v2"
)

type StatsApi struct {
	controller *StatsController
}

func NewStatsApi(controller *StatsController) *StatsApi {
	return &StatsApi{controller: controller}
}

func (h *StatsApi) Setup(app *fiber.App) {
	app.Get("/api/ticket-stats", h.controller.GetStats)
	app.Get("/api/ticket-stats/snapshots", h.controller.ListSnapshots)
}
