package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// EventCollection is the append-only safety event log.
type EventCollection interface {
	InsertEvent(ctx context.Context, event models.Event) (*models.Event, error)
	FindEvents(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error)
	FindEventByID(ctx context.Context, id string) (*models.Event, error)
}

// MongoEventCollection implements EventCollection for MongoDB.
type MongoEventCollection struct {
	Collection *mongo.Collection
}

// InsertEvent records a safety event with a store-assigned timestamp.
func (c *MongoEventCollection) InsertEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	event.ID = primitive.NewObjectID()
	event.Timestamp = time.Now().UTC()

	if _, err := c.Collection.InsertOne(ctx, event); err != nil {
		return nil, storageErr("insert event", err)
	}
	return &event, nil
}

// FindEvents lists events matching the filter, newest first. A limit of 0
// means no limit.
func (c *MongoEventCollection) FindEvents(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list events", err)
	}
	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, storageErr("decode events", err)
	}
	return events, nil
}

// FindEventByID fetches one event.
func (c *MongoEventCollection) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid event ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var event models.Event
	if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("event not found")
		}
		return nil, storageErr("find event", err)
	}
	return &event, nil
}
