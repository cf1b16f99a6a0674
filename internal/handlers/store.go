package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"authbackend/internal/models"
	"authbackend/internal/store"
)

// UserStore is the user-record collaborator the handlers depend on.
// *store.Users is the MongoDB implementation; tests use an in-memory fake.
type UserStore interface {
	FindOne(ctx context.Context, filter bson.M) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.User, error)
	List(ctx context.Context, filter bson.M, opts store.ListOptions) ([]models.User, int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

var _ UserStore = (*store.Users)(nil)
