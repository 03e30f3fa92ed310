// Package database owns the MongoDB connection for the application.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/siddhant14g/Real-shop/config"
	"github.com/siddhant14g/Real-shop/pkg/logger"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect dials MongoDB using MONGO_URI / MONGO_DB from config and verifies
// the connection with a ping. Call once at boot.
func Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	logger.Info("database: connected", "db", config.MongoDB())
	return nil
}

// DB returns the application database handle. Panics if Connect was not
// called, which is a programming error.
func DB() *mongo.Database {
	if db == nil {
		panic("database: Connect not called")
	}
	return db
}

// Collection is shorthand for DB().Collection(name).
func Collection(name string) *mongo.Collection {
	return DB().Collection(name)
}

// Close releases the client connection. Safe to call when never connected.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
