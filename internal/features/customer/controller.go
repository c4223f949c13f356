package customer

import (
	"github.com/gofiber/fiber/v2"
)

type CustomerController struct {
	Service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{Service: service}
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {object} map[string][]Customer
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/customers [get]
func (ctrl *CustomerController) ListCustomers(c *fiber.Ctx) error {
	customers, err := ctrl.Service.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customers": customers})
}
