package ivr

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Call is a logged phone (IVR) call.
type Call struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CustomerID   *primitive.ObjectID `json:"customer_id" bson:"customer_id"`
	TicketID     *primitive.ObjectID `json:"ticket_id" bson:"ticket_id"`
	PhoneNumber  string              `json:"phone_number" bson:"phone_number"`
	CallDuration float64             `json:"call_duration" bson:"call_duration"`
	CallType     string              `json:"call_type" bson:"call_type"`
	Notes        *string             `json:"notes" bson:"notes"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
}

// LogCallRequest is the body of POST /api/ivr-calls. CallDuration may be a
// JSON number or a numeric string.
type LogCallRequest struct {
	PhoneNumber  string      `json:"phone_number"`
	CallDuration interface{} `json:"call_duration" swaggertype:"number"`
	CallType     string      `json:"call_type"`
	Notes        string      `json:"notes"`
	CustomerID   string      `json:"customer_id"`
	TicketID     string      `json:"ticket_id"`
}
