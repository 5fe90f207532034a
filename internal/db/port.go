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

// PortCollection defines the interface for port metadata operations. Ports
// are immutable after creation.
type PortCollection interface {
	InsertPort(ctx context.Context, port models.Port) (*models.Port, error)
	FindPorts(ctx context.Context) ([]models.Port, error)
	FindPortByID(ctx context.Context, id string) (*models.Port, error)
}

// MongoPortCollection implements PortCollection for MongoDB.
type MongoPortCollection struct {
	Collection *mongo.Collection
}

// InsertPort inserts a port. Name uniqueness is enforced by a unique index.
func (c *MongoPortCollection) InsertPort(ctx context.Context, port models.Port) (*models.Port, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	port.ID = primitive.NewObjectID()
	port.CreatedAt = time.Now().UTC()

	if _, err := c.Collection.InsertOne(ctx, port); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("a port with this name already exists")
		}
		return nil, storageErr("insert port", err)
	}
	return &port, nil
}

// FindPorts lists all ports by name.
func (c *MongoPortCollection) FindPorts(ctx context.Context) ([]models.Port, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("list ports", err)
	}
	var ports []models.Port
	if err := cursor.All(ctx, &ports); err != nil {
		return nil, storageErr("decode ports", err)
	}
	return ports, nil
}

// FindPortByID fetches one port.
func (c *MongoPortCollection) FindPortByID(ctx context.Context, id string) (*models.Port, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid port ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var port models.Port
	if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&port); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("port not found")
		}
		return nil, storageErr("find port", err)
	}
	return &port, nil
}
