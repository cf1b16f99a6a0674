package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"authbackend/internal/apperr"
	"authbackend/internal/models"
	"authbackend/internal/token"
)

// UserKey is the gin context key carrying the authenticated *models.User.
const UserKey = "user"

// UserFinder resolves user records during authentication.
type UserFinder interface {
	FindOne(ctx context.Context, filter bson.M) (*models.User, error)
}

// Authenticate verifies the bearer access token, resolves the identity
// against the user store and attaches it to the context. Every failure path
// aborts with an AuthError; nothing malformed passes through silently.
func Authenticate(users UserFinder, accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
			log.Println("[AUTH] [ERROR] authorization header missing or malformed")
			Fail(c, apperr.Unauthorized("Authorization header missing or malformed"))
			return
		}

		payload, err := token.Verify(strings.TrimPrefix(raw, "Bearer "), accessSecret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token verification failed:", err)
			Fail(c, apperr.Unauthorized("Authentication failed"))
			return
		}

		uid, ok := payload["uid"].(string)
		if !ok || strings.TrimSpace(uid) == "" {
			log.Println("[AUTH] [ERROR] uid claim missing")
			Fail(c, apperr.Unauthorized("Invalid token payload"))
			return
		}

		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			log.Println("[AUTH] [ERROR] invalid uid claim")
			Fail(c, apperr.Unauthorized("Invalid token payload"))
			return
		}

		user, err := users.FindOne(c.Request.Context(), bson.M{"_id": userID})
		if err != nil {
			log.Println("[AUTH] [ERROR] identity lookup failed:", err)
			Fail(c, apperr.Unauthorized("Authentication failed"))
			return
		}
		if user == nil {
			log.Println("[AUTH] [ERROR] user not found for uid:", uid)
			Fail(c, apperr.Unauthorized("User not found"))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser reads the authenticated user attached by Authenticate.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
