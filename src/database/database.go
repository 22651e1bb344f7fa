package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	FormsCollection       = "forms"
	SubmissionsCollection = "submissions"
	UsersCollection       = "users"
)

const connectTimeout = 10 * time.Second

// ConnectMongoDB connects to uri and pings the primary.
func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI environment variable not set")
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log := logger.Component("database")
	log.Info().Msg("✅ MongoDB connected successfully")
	return client, nil
}

// EnsureIndexes creates the indexes the stores query by. It is safe to run on
// every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		FormsCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		SubmissionsCollection: {
			{Keys: bson.D{{Key: "form_id", Value: 1}}},
			{Keys: bson.D{{Key: "submission_expiration_time", Value: 1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// notFound maps the driver's empty-result error to the boundary error.
func notFound(err error, what, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s %s", models.ErrNotFound, what, id)
	}
	return err
}
