package docstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"bazaar-be/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewClient connects to the MongoDB deployment holding order documents.
func NewClient(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetTimeout(cfg.CollaboratorTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// InitMongo is the fatal variant of NewClient used at startup.
func InitMongo(cfg *config.Config) *mongo.Client {
	client, err := NewClient(cfg)
	if err != nil {
		log.Fatalf("MongoDB init failed: %v", err)
	}

	log.Println("MongoDB connection established")
	return client
}

// Database returns the configured database handle.
func Database(client *mongo.Client, cfg *config.Config) *mongo.Database {
	return client.Database(cfg.MongoDB)
}
