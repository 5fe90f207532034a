// Package db is the persistence layer. One Store is constructed at process
// start and passed to every component; uniqueness and lifecycle transitions
// are enforced with storage primitives (unique indexes, conditional updates)
// rather than check-then-act application code.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/config"
)

// opTimeout bounds every storage call so no request blocks indefinitely.
const opTimeout = 5 * time.Second

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(cfg config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store bundles the per-entity collections backed by one database.
type Store struct {
	Users         UserCollection
	Vessels       VesselCollection
	Ports         PortCollection
	History       HistoryCollection
	Voyages       VoyageCollection
	Events        EventCollection
	Notifications NotificationCollection
}

// NewStore builds a Store over the given database.
func NewStore(database *mongo.Database) *Store {
	vessels := database.Collection("vessels")
	history := database.Collection("history")
	voyages := database.Collection("voyages")
	events := database.Collection("events")

	return &Store{
		Users: &MongoUserCollection{Collection: database.Collection("users")},
		Vessels: &MongoVesselCollection{
			Collection: vessels,
			History:    history,
			Voyages:    voyages,
			Events:     events,
		},
		Ports:         &MongoPortCollection{Collection: database.Collection("ports")},
		History:       &MongoHistoryCollection{Collection: history},
		Voyages:       &MongoVoyageCollection{Collection: voyages},
		Events:        &MongoEventCollection{Collection: events},
		Notifications: &MongoNotificationCollection{Collection: database.Collection("notifications")},
	}
}

// EnsureIndexes creates the unique and query indexes the store relies on.
// Uniqueness of MMSI, username, email, and port name lives here so concurrent
// creates race at the storage engine, never in application code.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"vessels": {
			{
				Keys: bson.D{{Key: "mmsi", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"mmsi": bson.M{"$exists": true}}),
			},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"ports": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"history": {
			{Keys: bson.D{{Key: "vessel_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
		"voyages": {
			{Keys: bson.D{{Key: "vessel_id", Value: 1}, {Key: "departure_time", Value: -1}}},
		},
		"events": {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating %s indexes: %w", name, err)
		}
	}
	return nil
}

// opContext bounds a single storage operation.
func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// storageErr maps driver failures onto the error taxonomy. Timeouts and
// network failures surface as Transient so callers can retry.
func storageErr(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return apperr.Wrap(apperr.KindTransient, op+": storage unavailable", err)
	case mongo.IsDuplicateKeyError(err):
		return apperr.Wrap(apperr.KindDuplicate, op+": already exists", err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
