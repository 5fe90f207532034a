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

// VoyageCollection defines the interface for voyage lifecycle operations.
// Transitions are conditional updates: under concurrent calls exactly one
// writer wins and the loser observes an InvalidTransition.
type VoyageCollection interface {
	InsertVoyage(ctx context.Context, voyage models.Voyage) (*models.Voyage, error)
	FindVoyages(ctx context.Context, filter bson.M) ([]models.Voyage, error)
	FindVoyageByID(ctx context.Context, id string) (*models.Voyage, error)
	RecordArrival(ctx context.Context, id string) (*models.Voyage, error)
	MarkDelayed(ctx context.Context, id string) (*models.Voyage, error)
	MarkOnSchedule(ctx context.Context, id string) (*models.Voyage, error)
}

// MongoVoyageCollection implements VoyageCollection for MongoDB.
type MongoVoyageCollection struct {
	Collection *mongo.Collection
}

// InsertVoyage records a departure.
func (c *MongoVoyageCollection) InsertVoyage(ctx context.Context, voyage models.Voyage) (*models.Voyage, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	voyage.ID = primitive.NewObjectID()
	if _, err := c.Collection.InsertOne(ctx, voyage); err != nil {
		return nil, storageErr("insert voyage", err)
	}
	return &voyage, nil
}

// FindVoyages lists voyages matching the filter, most recent departure first.
func (c *MongoVoyageCollection) FindVoyages(ctx context.Context, filter bson.M) ([]models.Voyage, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "departure_time", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list voyages", err)
	}
	var voyages []models.Voyage
	if err := cursor.All(ctx, &voyages); err != nil {
		return nil, storageErr("decode voyages", err)
	}
	return voyages, nil
}

// FindVoyageByID fetches one voyage.
func (c *MongoVoyageCollection) FindVoyageByID(ctx context.Context, id string) (*models.Voyage, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid voyage ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var voyage models.Voyage
	if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&voyage); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("voyage not found")
		}
		return nil, storageErr("find voyage", err)
	}
	return &voyage, nil
}

// RecordArrival completes a voyage. Arrived is terminal: arrival_time is set
// once and never mutated afterwards. The filter only matches an unarrived
// voyage whose departure precedes the arrival clock, so a concurrent second
// call cannot overwrite the first.
func (c *MongoVoyageCollection) RecordArrival(ctx context.Context, id string) (*models.Voyage, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid voyage ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{
		"_id":            objectID,
		"arrival_time":   nil,
		"departure_time": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"arrival_time": now, "status": models.StatusArrived}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var voyage models.Voyage
	err = c.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&voyage)
	if err == nil {
		return &voyage, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, storageErr("record arrival", err)
	}
	return nil, c.transitionFailure(ctx, objectID, "arrival")
}

// MarkDelayed transitions On Schedule -> Delayed.
func (c *MongoVoyageCollection) MarkDelayed(ctx context.Context, id string) (*models.Voyage, error) {
	return c.setStatus(ctx, id, models.StatusOnSchedule, models.StatusDelayed)
}

// MarkOnSchedule reverses a delay, Delayed -> On Schedule.
func (c *MongoVoyageCollection) MarkOnSchedule(ctx context.Context, id string) (*models.Voyage, error) {
	return c.setStatus(ctx, id, models.StatusDelayed, models.StatusOnSchedule)
}

func (c *MongoVoyageCollection) setStatus(ctx context.Context, id string, from, to models.VoyageStatus) (*models.Voyage, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid voyage ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	filter := bson.M{"_id": objectID, "status": from, "arrival_time": nil}
	update := bson.M{"$set": bson.M{"status": to}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var voyage models.Voyage
	err = c.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&voyage)
	if err == nil {
		return &voyage, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, storageErr("update voyage status", err)
	}
	return nil, c.transitionFailure(ctx, objectID, string(to))
}

// transitionFailure distinguishes a missing voyage from a state machine
// violation after a conditional update matched nothing.
func (c *MongoVoyageCollection) transitionFailure(ctx context.Context, id primitive.ObjectID, transition string) error {
	var voyage models.Voyage
	if err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&voyage); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("voyage not found")
		}
		return storageErr("find voyage", err)
	}
	if voyage.ArrivalTime != nil {
		return apperr.InvalidTransition("voyage has already arrived")
	}
	return apperr.InvalidTransition("voyage status " + string(voyage.Status) + " does not permit " + transition)
}
