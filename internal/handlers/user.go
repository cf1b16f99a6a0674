package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"authbackend/internal/apperr"
	"authbackend/internal/middleware"
	"authbackend/internal/store"
)

// GetMe returns the authenticated user's profile.
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			middleware.Fail(c, apperr.Unauthorized("Not authenticated."))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":              user.ID.Hex(),
			"user_name":       user.UserName,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"email":           user.Email,
			"role":            user.Role,
			"isEmailVerified": user.IsEmailVerified,
			"bio":             user.Bio,
			"avatar":          user.Avatar,
			"createdAt":       user.CreatedAt,
			"updatedAt":       user.UpdatedAt,
		})
	}
}

// ListUsers returns a paginated user listing for administration.
func ListUsers(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			middleware.Fail(c, apperr.Validation("invalid pagination parameters"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, total, err := users.List(ctx, bson.M{}, store.ListOptions{
			Limit: limit,
			Skip:  (page - 1) * limit,
		})
		if err != nil {
			log.Println("[USER] [ERROR] list users failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to list users."))
			return
		}

		body := gin.H{
			"data":  result,
			"total": len(result),
		}
		if limit > total {
			body["warning"] = fmt.Sprintf("Only %d users found, but you requested %d. Showing available users.", total, limit)
		}
		c.JSON(http.StatusOK, body)
	}
}

// DeleteUser removes a user record by id.
func DeleteUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			middleware.Fail(c, apperr.Validation("invalid user id"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		deleted, err := users.DeleteByID(ctx, id)
		if err != nil {
			log.Println("[USER] [ERROR] delete user failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to delete user."))
			return
		}
		if deleted == nil {
			middleware.Fail(c, apperr.NotFound("User not found for deletion"))
			return
		}

		log.Println("[USER] [INFO] user deleted:", deleted.Email)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
	}
}
