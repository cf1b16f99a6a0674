package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User represents the application user account. RefreshToken holds the single
// currently valid refresh token for the account; nil means no active session.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName        string             `bson:"user_name" json:"user_name"`
	FirstName       string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName        string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	IsEmailVerified bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	Role            string             `bson:"role" json:"role"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	RefreshToken    *string            `bson:"refreshToken" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
