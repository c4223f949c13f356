package stats

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type StatsController struct {
	Service StatsService
}

func NewStatsController(service StatsService) *StatsController {
	return &StatsController{Service: service}
}

// GetStats godoc
// @Summary Ticket counts per status
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]TicketStats
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/ticket-stats [get]
func (ctrl *StatsController) GetStats(c *fiber.Ctx) error {
	current, err := ctrl.Service.Live(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": current})
}

// ListSnapshots godoc
// @Summary Stored ticket stats snapshots, newest first
// @Tags stats
// @Produce json
// @Param limit query int false "Number of snapshots" default(24)
// @Success 200 {object} map[string][]TicketStats
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/ticket-stats/snapshots [get]
func (ctrl *StatsController) ListSnapshots(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "24"), 10, 64)
	snapshots, err := ctrl.Service.ListSnapshots(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"snapshots": snapshots})
}
