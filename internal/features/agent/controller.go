package agent

import (
	"github.com/gofiber/fiber/v2"
)

type AgentController struct {
	Service AgentService
}

func NewAgentController(service AgentService) *AgentController {
	return &AgentController{Service: service}
}

// ListAgents godoc
// @Summary List active agents
// @Tags agents
// @Produce json
// @Success 200 {object} map[string][]Agent
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/agents [get]
func (ctrl *AgentController) ListAgents(c *fiber.Ctx) error {
	agents, err := ctrl.Service.ListActiveAgents(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"agents": agents})
}
