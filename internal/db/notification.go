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

// NotificationCollection defines the interface for the notification log.
type NotificationCollection interface {
	InsertNotification(ctx context.Context, notification models.Notification) (*models.Notification, error)
	FindNotifications(ctx context.Context) ([]models.Notification, error)
	FindNotificationByID(ctx context.Context, id string) (*models.Notification, error)
	MarkRead(ctx context.Context, id string, read bool) error
}

// MongoNotificationCollection implements NotificationCollection for MongoDB.
type MongoNotificationCollection struct {
	Collection *mongo.Collection
}

// InsertNotification inserts a notification.
func (c *MongoNotificationCollection) InsertNotification(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now().UTC()
	notification.IsRead = false

	if _, err := c.Collection.InsertOne(ctx, notification); err != nil {
		return nil, storageErr("insert notification", err)
	}
	return &notification, nil
}

// FindNotifications lists notifications, newest first.
func (c *MongoNotificationCollection) FindNotifications(ctx context.Context) ([]models.Notification, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("list notifications", err)
	}
	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, storageErr("decode notifications", err)
	}
	return notifications, nil
}

// FindNotificationByID fetches one notification.
func (c *MongoNotificationCollection) FindNotificationByID(ctx context.Context, id string) (*models.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid notification ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var notification models.Notification
	if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&notification); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("notification not found")
		}
		return nil, storageErr("find notification", err)
	}
	return &notification, nil
}

// MarkRead sets the read flag.
func (c *MongoNotificationCollection) MarkRead(ctx context.Context, id string, read bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid notification ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"is_read": read}})
	if err != nil {
		return storageErr("update notification", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}
