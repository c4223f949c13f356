package customer

import (
	"github.com/gofiber/fiber/v2"
)

type CustomerApi struct {
	controller *CustomerController
}

func NewCustomerApi(controller *CustomerController) *CustomerApi {
	return &CustomerApi{controller: controller}
}

func (h *CustomerApi) Setup(app *fiber.App) {
	app.Get("/api/customers", h.controller.ListCustomers)
}
