//go:build integration

package testutils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"Bizonii-Backend/src/database"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMongoForIntegration returns a fresh database with indexes applied.
// TEST_MONGO_URI points at an existing server; otherwise a mongo:7 container
// is started.
func SetupMongoForIntegration() (*mongo.Database, func()) {
	ctx := context.Background()

	if uri := os.Getenv("TEST_MONGO_URI"); uri != "" {
		client, err := database.ConnectMongoDB(ctx, uri)
		if err != nil {
			log.Fatal(err)
		}
		db := prepare(ctx, client)
		return db, func() {
			_ = db.Drop(ctx)
			_ = client.Disconnect(ctx)
		}
	}

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatal(err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		log.Fatal(err)
	}

	client, err := database.ConnectMongoDB(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()))
	if err != nil {
		log.Fatal(err)
	}
	db := prepare(ctx, client)

	cleanup := func() {
		_ = client.Disconnect(ctx)
		_ = container.Terminate(ctx)
	}
	return db, cleanup
}

func prepare(ctx context.Context, client *mongo.Client) *mongo.Database {
	db := client.Database("bizonii_test_" + uuid.NewString()[:8])
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal(err)
	}
	return db
}
