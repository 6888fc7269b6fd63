package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Usage record statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UsageRecord is one generate or image call as stored in generative-usages.
type UsageRecord struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID   string                 `bson:"request_id" json:"request_id"`
	Alias       string                 `bson:"alias" json:"alias"`
	Provider    string                 `bson:"provider,omitempty" json:"provider,omitempty"`
	Model       string                 `bson:"model,omitempty" json:"model,omitempty"`
	Operation   string                 `bson:"operation" json:"operation"`
	Status      string                 `bson:"status" json:"status"`
	StatusCode  int                    `bson:"status_code" json:"status_code"`
	DurationMs  int64                  `bson:"duration_ms" json:"duration_ms"`
	Usage       map[string]interface{} `bson:"usage,omitempty" json:"usage,omitempty"`
	Error       string                 `bson:"error,omitempty" json:"error,omitempty"`
	Environment string                 `bson:"environment" json:"environment"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
}
