package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`       // The collection name
	RecordID  string             `bson:"record_id" json:"record_id"` // The ID of the record being modified
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is a persisted application log line.
type Log struct {
	Message    string    `bson:"message" json:"message"`
	Level      string    `bson:"level" json:"level"`
	LevelId    int       `bson:"log_level_id" json:"log_level_id"`
	Caller     string    `bson:"caller,omitempty" json:"caller,omitempty"`
	RequestId  string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	TicketId   string    `bson:"ticket_id,omitempty" json:"ticket_id,omitempty"`
	CustomerId string    `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	AppId      string    `bson:"app_id" json:"app_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
