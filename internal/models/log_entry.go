package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log level constants.
const (
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// LogEntry represents a single log entry document stored in MongoDB.
// The ObjectID serializes to its hex form in JSON responses.
type LogEntry struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Level     string                 `json:"level" bson:"level"`
	Message   string                 `json:"message" bson:"message"`
	Service   string                 `json:"service" bson:"service"`
	Metadata  map[string]interface{} `json:"metadata" bson:"metadata"`
	Tags      []string               `json:"tags" bson:"tags"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" bson:"updated_at"`
}

// LogEntryCreate is the payload for creating a log entry. Identity and
// timestamps are assigned by the repository.
type LogEntryCreate struct {
	Level    string                 `json:"level" validate:"required"`
	Message  string                 `json:"message" validate:"required"`
	Service  string                 `json:"service" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
	Tags     []string               `json:"tags"`
}
