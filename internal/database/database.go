package database

import (
	"context"
	"log"
	"time"

	"go-support/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

// MongodbDB is the shared store handle every repository is built from.
type MongodbDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*MongodbDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongodbDB{Client: client, DB: client.Database(cfg.DBName)}, nil
}

// NewDatabase creates a new MongoDB database connection with lifecycle management
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*MongodbDB, error) {
	db, err := Connect(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return db.Client.Disconnect(ctx)
		},
	})

	return db, nil
}

// Ping checks that the primary is reachable.
func (m *MongodbDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}
