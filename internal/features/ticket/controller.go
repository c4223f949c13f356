package ticket

import (
	"fmt"
	"time"

	"go-support/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TicketController struct {
	TicketService TicketService
}

func NewTicketController(ticketService TicketService) *TicketController {
	return &TicketController{TicketService: ticketService}
}

// CreateTicket godoc
// @Summary Create a ticket
// @Description Resolves the customer by email (or creates one) and opens a ticket.
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "Ticket and contact fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/create-ticket [post]
func (ctrl *TicketController) CreateTicket(c *fiber.Ctx) error {
	var req CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.NewValidationError("Invalid request body")
	}

	view, err := ctrl.TicketService.CreateTicket(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  view,
	})
}

// ListTickets godoc
// @Summary List tickets with customers, newest first
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string][]TicketView
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tickets [get]
func (ctrl *TicketController) ListTickets(c *fiber.Ctx) error {
	tickets, err := ctrl.TicketService.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

// ListOpenTickets godoc
// @Summary List the 20 newest open or working tickets
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string][]OpenTicketView
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/open-tickets [get]
func (ctrl *TicketController) ListOpenTickets(c *fiber.Ctx) error {
	tickets, err := ctrl.TicketService.ListOpenTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

// UpdateTicket godoc
// @Summary Update ticket fields
// @Description Accepts status, priority, assigned_to, title, description, type and tracking_number.
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body map[string]interface{} true "Fields to change"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tickets/{id} [patch]
func (ctrl *TicketController) UpdateTicket(c *fiber.Ctx) error {
	patch := TicketPatch{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			return utils.NewValidationError("Invalid request body")
		}
	}

	if err := ctrl.TicketService.UpdateTicket(c.UserContext(), c.Params("id"), patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListComments godoc
// @Summary List a ticket's comments, newest first
// @Tags comments
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string][]CommentView
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tickets/{id}/comments [get]
func (ctrl *TicketController) ListComments(c *fiber.Ctx) error {
	comments, err := ctrl.TicketService.ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// AddComment godoc
// @Summary Add a comment to a ticket
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tickets/{id}/comments [post]
func (ctrl *TicketController) AddComment(c *fiber.Ctx) error {
	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.NewValidationError("Invalid request body")
	}

	id, err := ctrl.TicketService.AddComment(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"comment_id": id.Hex(),
	})
}

// History godoc
// @Summary List a ticket's change history
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string][]models.AuditLog
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tickets/{id}/history [get]
func (ctrl *TicketController) History(c *fiber.Ctx) error {
	history, err := ctrl.TicketService.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"history": history})
}

// ExportTickets godoc
// @Summary Download all tickets as a spreadsheet
// @Tags tickets
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tickets/export [get]
func (ctrl *TicketController) ExportTickets(c *fiber.Ctx) error {
	data, err := ctrl.TicketService.ExportTickets(c.UserContext())
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("tickets-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
