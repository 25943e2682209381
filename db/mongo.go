// db/mongo.go
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/config"
	logger "github.com/pingwise/clinic-api/logging"
)

var (
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
)

// Collection names
const (
	CollPatients     = "patients"
	CollAppointments = "appointments"
	CollTeam         = "team_members"
	CollCampaigns    = "campaigns"
	CollUsers        = "users"
)

func InitMongo() error {
	uri := config.GetString("mongo.uri")
	logger.Info("Connecting to MongoDB", zap.String("uri", uri))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMaxConnIdleTime(30*time.Minute))
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	// Test the connection
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	MongoClient = client
	MongoDatabase = client.Database(config.GetString("mongo.database"))

	if err := ensureIndexes(ctx); err != nil {
		return err
	}

	logger.Info("Successfully connected to MongoDB")
	return nil
}

func ensureIndexes(ctx context.Context) error {
	// Unique email per registered user
	_, err := MongoDatabase.Collection(CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create unique index on users.email: %w", err)
	}

	// Appointments are looked up by patient (delete guard) and by start time (today view)
	_, err = MongoDatabase.Collection(CollAppointments).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
		{Keys: bson.D{{Key: "starts_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	return nil
}

func CloseMongo() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := MongoClient.Disconnect(ctx); err != nil {
			logger.Error("Error closing MongoDB connection", zap.Error(err))
		} else {
			logger.Info("MongoDB connection closed successfully")
		}
	}
}

// Collection returns a handle for the named collection.
func Collection(name string) *mongo.Collection {
	return MongoDatabase.Collection(name)
}
