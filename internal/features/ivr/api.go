package ivr

import (
	"github.com/gofiber/fiber/v2"
)

type IVRApi struct {
	controller *IVRController
}

func NewIVRApi(controller *IVRController) *IVRApi {
	return &IVRApi{controller: controller}
}

func (h *IVRApi) Setup(app *fiber.App) {
	app.Post("/api/ivr-calls", h.controller.LogCall)
}
