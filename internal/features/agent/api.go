package agent

import (
	"github.com/gofiber/fiber/v2"
)

type AgentApi struct {
	controller *AgentController
}

func NewAgentApi(controller *AgentController) *AgentApi {
	return &AgentApi{controller: controller}
}

func (h *AgentApi) Setup(app *fiber.App) {
	app.Get("/api/agents", h.controller.ListAgents)
}
