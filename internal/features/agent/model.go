package agent

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agent is a support staff member tickets and comments can reference.
type Agent struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Role      string             `json:"role" bson:"role"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Summary is the agent projection embedded in comment views.
type Summary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

func (a *Agent) Summary() *Summary {
	if a == nil {
		return nil
	}
	return &Summary{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
