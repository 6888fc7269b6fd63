package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hulukipedia/gateway/internal/logger"
)

const connectTimeout = 10 * time.Second

// Connection holds the MongoDB connection and configuration
type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *DatabaseConfig
}

// Connect opens and verifies a MongoDB connection for config.
func Connect(ctx context.Context, config *DatabaseConfig) (*Connection, error) {
	if !config.Enabled() {
		return nil, fmt.Errorf("MongoDB URI is not configured")
	}
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Database)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.URI)
	if config.AppName != "" {
		clientOptions.SetAppName(config.AppName)
	}

	masked := config.MaskSensitiveData()
	logger.Info(ctx, "Connecting to MongoDB",
		"database", masked.DatabaseName,
		"uri", masked.URI)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	connection := &Connection{
		Client:   client,
		Database: client.Database(config.DatabaseName),
		Config:   config,
	}

	logger.Info(ctx, "Connected to MongoDB", "database", config.DatabaseName)

	// Index failures only cost query speed.
	if err := connection.createIndexes(connectCtx); err != nil {
		logger.Warn(ctx, "Failed to create database indexes", "error", err)
	}

	return connection, nil
}

// Disconnect closes the MongoDB connection
func (c *Connection) Disconnect(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return c.Client.Disconnect(ctx)
}

// GetCollection returns a MongoDB collection
func (c *Connection) GetCollection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

func (c *Connection) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "alias", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("alias_created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetName("request_id"),
		},
	}

	if _, err := c.GetCollection(UsageCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", UsageCollection, err)
	}

	logger.Debug(ctx, "Created database indexes", "collection", UsageCollection)
	return nil
}
