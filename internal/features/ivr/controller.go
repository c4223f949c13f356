package ivr

import (
	"go-support/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type IVRController struct {
	Service IVRService
}

func NewIVRController(service IVRService) *IVRController {
	return &IVRController{Service: service}
}

// LogCall godoc
// @Summary Log a phone call
// @Tags ivr
// @Accept json
// @Produce json
// @Param request body LogCallRequest true "Call details"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/ivr-calls [post]
func (ctrl *IVRController) LogCall(c *fiber.Ctx) error {
	var req LogCallRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.NewValidationError("Invalid request body")
	}

	id, err := ctrl.Service.LogCall(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"call_id": id.Hex(),
	})
}
