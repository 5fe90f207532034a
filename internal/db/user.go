package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/models"
)

// UserCollection defines the interface for identity storage operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, user models.User) error
	DeleteUser(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string) error
}

// MongoUserCollection implements UserCollection for MongoDB.
type MongoUserCollection struct {
	Collection *mongo.Collection
}

// InsertUser inserts a new user. Username and email uniqueness is enforced by
// the collection's unique indexes; a collision surfaces as a Duplicate error.
func (c *MongoUserCollection) InsertUser(ctx context.Context, user models.User) (*models.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true

	if _, err := c.Collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("username or email already registered")
		}
		return nil, storageErr("insert user", err)
	}
	return &user, nil
}

// FindUserByID finds a user by their ID.
func (c *MongoUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid user ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var user models.User
	if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, storageErr("find user", err)
	}
	return &user, nil
}

// FindUserByUsername finds a user by their username.
func (c *MongoUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var user models.User
	if err := c.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, storageErr("find user", err)
	}
	return &user, nil
}

// FindUsers lists all users.
func (c *MongoUserCollection) FindUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storageErr("list users", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storageErr("decode users", err)
	}
	return users, nil
}

// UpdateUser replaces a user record.
func (c *MongoUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid user ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	user.ID = objectID
	user.UpdatedAt = time.Now().UTC()

	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, user)
	if err != nil {
		return storageErr("update user", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// DeleteUser deletes a user record.
func (c *MongoUserCollection) DeleteUser(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid user ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return storageErr("delete user", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// UpdateLastLogin records a successful login.
func (c *MongoUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid user ID")
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	_, err = c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"last_login": now, "updated_at": now}},
	)
	if err != nil {
		return storageErr("update last login", err)
	}
	return nil
}
