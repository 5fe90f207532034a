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

// VesselCollection defines the interface for fleet registry operations. Find
// operations take the caller's visibility predicate pre-composed into the
// filter.
type VesselCollection interface {
	InsertVessel(ctx context.Context, vessel models.Vessel) (*models.Vessel, error)
	FindVessels(ctx context.Context, filter bson.M) ([]models.Vessel, error)
	FindVesselIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
	FindVesselByID(ctx context.Context, id string, filter bson.M) (*models.Vessel, error)
	UpdateVessel(ctx context.Context, id string, update bson.M) (*models.Vessel, error)
	UpdateLastPosition(ctx context.Context, id string, loc models.Location) error
	DeleteVessel(ctx context.Context, id string) error
}

// MongoVesselCollection implements VesselCollection for MongoDB. It holds the
// dependent collections so vessel deletion can cascade to history, voyages,
// and events.
type MongoVesselCollection struct {
	Collection *mongo.Collection
	History    *mongo.Collection
	Voyages    *mongo.Collection
	Events     *mongo.Collection
}

// InsertVessel inserts a vessel. MMSI uniqueness is enforced by a partial
// unique index; a duplicate surfaces as a Duplicate error, never a silent
// overwrite.
func (c *MongoVesselCollection) InsertVessel(ctx context.Context, vessel models.Vessel) (*models.Vessel, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	vessel.ID = primitive.NewObjectID()
	vessel.CreatedAt = now
	vessel.UpdatedAt = now
	if vessel.Status == "" {
		vessel.Status = models.VesselStatusActive
	}

	if _, err := c.Collection.InsertOne(ctx, vessel); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("a vessel with this MMSI already exists")
		}
		return nil, storageErr("insert vessel", err)
	}
	return &vessel, nil
}

// FindVessels lists vessels matching the filter, newest first.
func (c *MongoVesselCollection) FindVessels(ctx context.Context, filter bson.M) ([]models.Vessel, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list vessels", err)
	}
	var vessels []models.Vessel
	if err := cursor.All(ctx, &vessels); err != nil {
		return nil, storageErr("decode vessels", err)
	}
	return vessels, nil
}

// FindVesselIDs projects just the IDs of vessels matching the filter. Used to
// carry the visibility scope over to vessel-correlated collections.
func (c *MongoVesselCollection) FindVesselIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list vessel ids", err)
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageErr("decode vessel ids", err)
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// FindVesselByID fetches one vessel, constrained by the caller's visibility
// filter. A vessel outside the caller's scope reads as not found.
func (c *MongoVesselCollection) FindVesselByID(ctx context.Context, id string, filter bson.M) (*models.Vessel, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid vessel ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	query := bson.M{"_id": objectID}
	for k, v := range filter {
		query[k] = v
	}

	var vessel models.Vessel
	if err := c.Collection.FindOne(ctx, query).Decode(&vessel); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("vessel not found")
		}
		return nil, storageErr("find vessel", err)
	}
	return &vessel, nil
}

// UpdateVessel applies a partial update and returns the updated vessel.
func (c *MongoVesselCollection) UpdateVessel(ctx context.Context, id string, update bson.M) (*models.Vessel, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid vessel ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	update["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var vessel models.Vessel
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": update}, opts).Decode(&vessel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("vessel not found")
		}
		return nil, storageErr("update vessel", err)
	}
	return &vessel, nil
}

// UpdateLastPosition moves the vessel's last known position.
func (c *MongoVesselCollection) UpdateLastPosition(ctx context.Context, id string, loc models.Location) error {
	_, err := c.UpdateVessel(ctx, id, bson.M{"last_position": loc})
	return err
}

// DeleteVessel removes a vessel and cascades to its history, voyages, and
// events, so no record is left referencing a vessel that no longer exists.
func (c *MongoVesselCollection) DeleteVessel(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid vessel ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return storageErr("delete vessel", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("vessel not found")
	}

	ref := bson.M{"vessel_id": objectID}
	for _, col := range []*mongo.Collection{c.History, c.Voyages, c.Events} {
		if _, err := col.DeleteMany(ctx, ref); err != nil {
			return storageErr("cascade delete vessel records", err)
		}
	}
	return nil
}
