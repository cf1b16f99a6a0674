package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"authbackend/internal/models"
)

// ListOptions controls pagination for List. Sort is newest-first.
type ListOptions struct {
	Limit int64
	Skip  int64
}

// Users is the MongoDB-backed user record store.
type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// FindOne returns the first user matching filter, or nil when none matches.
// Filters use bson.M with equality and $or, e.g.
// bson.M{"$or": []bson.M{{"email": e}, {"user_name": n}}}.
func (s *Users) FindOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record and returns it with its assigned ID.
func (s *Users) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

// UpdateByID applies patch as a $set and returns the updated record, or nil
// when no record matches.
func (s *Users) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.User, error) {
	patch["updatedAt"] = time.Now()

	var updated models.User
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// List returns a page of users plus the total count for the filter.
func (s *Users) List(ctx context.Context, filter bson.M, opts ListOptions) ([]models.User, int64, error) {
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)

	cursor, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteByID removes a user record and returns it, or nil when none matches.
func (s *Users) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var deleted models.User
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
