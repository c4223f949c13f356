package customer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is the canonical contact a ticket belongs to.
type Customer struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       *string            `json:"email" bson:"email"`
	Phone       *string            `json:"phone" bson:"phone"`
	CompanyName *string            `json:"company_name" bson:"company_name"`
	Address     *string            `json:"address" bson:"address"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// ContactFields are the raw, untrimmed contact values from a request.
type ContactFields struct {
	Name        string
	Email       string
	Phone       string
	CompanyName string
	Address     string
}
