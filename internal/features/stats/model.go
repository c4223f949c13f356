package stats

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStats counts tickets per status at a point in time.
type TicketStats struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Counts  map[string]int64   `json:"counts" bson:"counts"`
	Total   int64              `json:"total" bson:"total"`
	TakenAt time.Time          `json:"taken_at" bson:"taken_at"`
}
