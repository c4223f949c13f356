package ticket

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusOpen    = "open"
	StatusWorking = "working"
	StatusClosed  = "closed"

	DefaultPriority = "medium"
	DefaultType     = "inquiry"
	DefaultSource   = "api"
)

// OpenStatuses are the statuses shown on the open-tickets dashboard.
var OpenStatuses = []string{StatusOpen, StatusWorking}

// Ticket represents a customer support ticket
type Ticket struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TicketNumber   string              `json:"ticket_number" bson:"ticket_number"`
	CustomerID     primitive.ObjectID  `json:"customer_id" bson:"customer_id"`
	Title          string              `json:"title" bson:"title"`
	Description    *string             `json:"description" bson:"description"`
	Type           string              `json:"type" bson:"type"`
	Status         string              `json:"status" bson:"status"`
	Priority       string              `json:"priority" bson:"priority"`
	Source         string              `json:"source" bson:"source"`
	TrackingNumber *string             `json:"tracking_number" bson:"tracking_number"`
	AssignedTo     *primitive.ObjectID `json:"assigned_to" bson:"assigned_to"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at" bson:"closed_at"`
}

// TicketComment represents a comment or note on a ticket
type TicketComment struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TicketID   primitive.ObjectID  `json:"ticket_id" bson:"ticket_id"`
	AgentID    *primitive.ObjectID `json:"agent_id" bson:"agent_id"`
	Comment    string              `json:"comment" bson:"comment"`
	IsInternal bool                `json:"is_internal" bson:"is_internal"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
}

// CreateTicketRequest is the body of POST /api/create-ticket.
type CreateTicketRequest struct {
	CustomerName      string `json:"customer_name"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
	CompanyName       string `json:"company_name"`
	CustomerAddress   string `json:"customer_address"`
	TicketTitle       string `json:"ticket_title"`
	TicketDescription string `json:"ticket_description"`
	TicketType        string `json:"ticket_type"`
	Priority          string `json:"priority"`
	Source            string `json:"source"`
	TrackingNumber    string `json:"tracking_number"`
}

// AddCommentRequest is the body of POST /api/tickets/:id/comments.
type AddCommentRequest struct {
	Comment    string `json:"comment"`
	IsInternal bool   `json:"is_internal"`
	AgentID    string `json:"agent_id"`
}

// TicketPatch holds the raw JSON object of a PATCH request. Only the
// fields in patchableFields are ever written.
type TicketPatch map[string]interface{}

// StatusCount is one row of the per-status aggregation.
type StatusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}
