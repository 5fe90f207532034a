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

// HistoryCollection is the append-only track store. Timestamps are assigned
// here at append time, never taken from the caller, so the write-order clock
// is consistent.
type HistoryCollection interface {
	AppendTrackPoint(ctx context.Context, vesselID primitive.ObjectID, lat, lon float64) (*models.TrackPoint, error)
	Replay(ctx context.Context, vesselID primitive.ObjectID) ([]models.TrackPoint, error)
	Recent(ctx context.Context, filter bson.M, limit int64) ([]models.TrackPoint, error)
	FindTrackPointByID(ctx context.Context, id string) (*models.TrackPoint, error)
}

// MongoHistoryCollection implements HistoryCollection for MongoDB.
type MongoHistoryCollection struct {
	Collection *mongo.Collection
}

// AppendTrackPoint records one position sample for a vessel.
func (c *MongoHistoryCollection) AppendTrackPoint(ctx context.Context, vesselID primitive.ObjectID, lat, lon float64) (*models.TrackPoint, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	point := models.TrackPoint{
		ID:        primitive.NewObjectID(),
		VesselID:  vesselID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: time.Now().UTC(),
	}
	if _, err := c.Collection.InsertOne(ctx, point); err != nil {
		return nil, storageErr("append track point", err)
	}
	return &point, nil
}

// Replay returns a vessel's full track in ascending timestamp order. Points
// sharing a timestamp tie-break on insertion order (_id), so the sequence is
// stable across re-invocations and safe to run alongside ongoing appends.
func (c *MongoHistoryCollection) Replay(ctx context.Context, vesselID primitive.ObjectID) ([]models.TrackPoint, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"vessel_id": vesselID}, opts)
	if err != nil {
		return nil, storageErr("replay track", err)
	}
	var points []models.TrackPoint
	if err := cursor.All(ctx, &points); err != nil {
		return nil, storageErr("decode track points", err)
	}
	return points, nil
}

// Recent returns the newest track points matching the filter, descending.
// A limit of 0 means no limit.
func (c *MongoHistoryCollection) Recent(ctx context.Context, filter bson.M, limit int64) ([]models.TrackPoint, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list track points", err)
	}
	var points []models.TrackPoint
	if err := cursor.All(ctx, &points); err != nil {
		return nil, storageErr("decode track points", err)
	}
	return points, nil
}

// FindTrackPointByID fetches one track point.
func (c *MongoHistoryCollection) FindTrackPointByID(ctx context.Context, id string) (*models.TrackPoint, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid track point ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var point models.TrackPoint
	if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&point); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("track point not found")
		}
		return nil, storageErr("find track point", err)
	}
	return &point, nil
}
