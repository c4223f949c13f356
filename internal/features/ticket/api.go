package ticket

import (
	"github.com/gofiber/fiber/v2"
)

type TicketApi struct {
	controller *TicketController
}

func NewTicketApi(controller *TicketController) *TicketApi {
	return &TicketApi{controller: controller}
}

func (h *TicketApi) Setup(app *fiber.App) {
	app.Post("/api/create-ticket", h.controller.CreateTicket)
	app.Get("/api/open-tickets", h.controller.ListOpenTickets)

	tickets := app.Group("/api/tickets")
	tickets.Get("/", h.controller.ListTickets)
	tickets.Get("/export", h.controller.ExportTickets)
	tickets.Patch("/:id", h.controller.UpdateTicket)
	tickets.Get("/:id/comments", h.controller.ListComments)
	tickets.Post("/:id/comments", h.controller.AddComment)
	tickets.Get("/:id/history", h.controller.History)
}
