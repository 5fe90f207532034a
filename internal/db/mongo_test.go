package db

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marinewatch/maritime-backend/internal/config"
)

// testDatabase connects to a local MongoDB, or skips the test when no server
// is reachable. Each call drops the test database for isolation.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := ConnectMongo(config.Config{MongoURI: uri})
	if err != nil {
		t.Skipf("failed to create client: %v, skipping integration test", err)
	}
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	database := client.Database("test_maritime")
	if err := database.Drop(context.Background()); err != nil {
		t.Fatalf("dropping test database: %v", err)
	}
	if err := EnsureIndexes(context.Background(), database); err != nil {
		t.Fatalf("creating indexes: %v", err)
	}
	return database
}
