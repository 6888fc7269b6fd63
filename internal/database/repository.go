package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UsageRepository persists usage records.
type UsageRepository struct {
	collection *mongo.Collection
}

// NewUsageRepository binds the repository to the usage collection of conn.
func NewUsageRepository(conn *Connection) *UsageRepository {
	return &UsageRepository{collection: conn.GetCollection(UsageCollection)}
}

// InsertUsage stores record, stamping created_at when unset.
func (r *UsageRepository) InsertUsage(ctx context.Context, record *UsageRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert usage record: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}
