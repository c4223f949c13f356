package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventCommentAdded  EventType = "comment_added"
	EventIVRCallLogged EventType = "ivr_call_logged"
)

// AllEventTypes lists every type a subscriber may listen for.
var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketUpdated,
	EventCommentAdded,
	EventIVRCallLogged,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps a fresh id and time.
func NewEvent(eventType EventType, ticketID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string `json:"ticket_number"`
	CustomerID   string `json:"customer_id"`
	Title        string `json:"title"`
	Priority     string `json:"priority"`
}

// TicketUpdatedPayload lists the fields written by the update.
type TicketUpdatedPayload struct {
	Fields []string `json:"fields"`
	Status string   `json:"status,omitempty"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID  string  `json:"comment_id"`
	AgentID    *string `json:"agent_id,omitempty"`
	IsInternal bool    `json:"is_internal"`
}

// IVRCallLoggedPayload payload.
type IVRCallLoggedPayload struct {
	CallID      string  `json:"call_id"`
	PhoneNumber string  `json:"phone_number"`
	CallType    string  `json:"call_type"`
	CustomerID  *string `json:"customer_id,omitempty"`
}
