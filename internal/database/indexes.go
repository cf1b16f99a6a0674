package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes creates the unique email and user_name indexes the auth
// flow relies on for its conflict checks.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	models := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_name", Value: 1}},
			Options: options.Index().
				SetName("user_name_unique").
				SetUnique(true),
		},
	}

	log.Println("EnsureUserIndexes: creating email_unique and user_name_unique indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureUserIndexes: index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: indexes created")
	return nil
}
