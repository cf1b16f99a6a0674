package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"authbackend/internal/apperr"
	"authbackend/internal/hash"
	"authbackend/internal/middleware"
	"authbackend/internal/models"
	"authbackend/internal/token"
)

const authCookieName = "AUTH_TOKEN"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	UserName  string `json:"user_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new user and returns a single short-lived token. Full
// access/refresh pairs are only issued by Login.
func Register(users UserStore, hasher hash.Hasher, secret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Fail(c, validationError(err))
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		userName := strings.TrimSpace(req.UserName)
		if email == "" || userName == "" || strings.TrimSpace(req.Password) == "" {
			middleware.Fail(c, apperr.Validation("email, user_name and password are required."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		existing, err := users.FindOne(ctx, bson.M{
			"$or": []bson.M{{"email": email}, {"user_name": userName}},
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] register lookup failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to create user."))
			return
		}
		if existing != nil {
			log.Println("[AUTH] [ERROR] register conflict for:", email)
			middleware.Fail(c, apperr.Conflict("A user with this email or user name already exists."))
			return
		}

		hashed, err := hasher.Hash(req.Password)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to create user."))
			return
		}

		user := &models.User{
			UserName:  userName,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     email,
			Password:  hashed,
			Role:      models.RoleCustomer,
			Bio:       strings.TrimSpace(req.Bio),
			Avatar:    strings.TrimSpace(req.Avatar),
		}

		created, err := users.Create(ctx, user)
		if err != nil || created == nil {
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to create user."))
			return
		}

		signed, err := token.Sign(token.Payload{"uid": created.ID.Hex()}, secret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to generate token."))
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully.",
			"token":   signed,
		})
	}
}

// Login validates credentials, issues an access/refresh pair and stores the
// refresh token on the user record, superseding any previous session.
func Login(users UserStore, hasher hash.Hasher, issuer *token.Issuer, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Fail(c, validationError(err))
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		userName := strings.TrimSpace(req.UserName)
		if strings.TrimSpace(req.Password) == "" {
			middleware.Fail(c, apperr.Validation("Password is required."))
			return
		}
		if email == "" && userName == "" {
			middleware.Fail(c, apperr.Validation("Email or username is required."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filters := []bson.M{}
		if email != "" {
			filters = append(filters, bson.M{"email": email})
		}
		if userName != "" {
			filters = append(filters, bson.M{"user_name": userName})
		}

		user, err := users.FindOne(ctx, bson.M{"$or": filters})
		if err != nil {
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to log in."))
			return
		}
		// Identical message for unknown user and bad password so the
		// response does not leak which one was wrong.
		if user == nil || !hasher.Compare(req.Password, user.Password) {
			log.Println("[AUTH] [ERROR] login invalid credentials")
			middleware.Fail(c, apperr.Unauthorized("Invalid email, username or password credentials."))
			return
		}

		pair, err := issuer.Issue(token.Payload{"uid": user.ID.Hex()})
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to generate token."))
			return
		}

		if _, err := users.UpdateByID(ctx, user.ID, bson.M{"refreshToken": pair.RefreshToken}); err != nil {
			log.Println("[AUTH] [ERROR] login session persist failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to persist session."))
			return
		}

		setAuthCookie(c, pair.AccessToken, production, pair.AccessExpiresAt)

		log.Println("[AUTH] [INFO] login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful.",
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
	}
}

// Logout clears the stored refresh token, invalidating the session
// server-side. Requires an authenticated identity on the context.
func Logout(users UserStore, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			middleware.Fail(c, apperr.Unauthorized("Not authenticated."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := users.UpdateByID(ctx, user.ID, bson.M{"refreshToken": nil}); err != nil {
			log.Println("[AUTH] [ERROR] logout persist failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to log out."))
			return
		}

		clearAuthCookie(c, production)

		log.Println("[AUTH] [INFO] logout succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
	}
}

// Refresh exchanges a valid, currently stored refresh token for a new pair,
// rotating the stored value so the presented token cannot be reused.
func Refresh(users UserStore, issuer *token.Issuer, refreshSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Fail(c, validationError(err))
			return
		}

		presented := strings.TrimSpace(req.RefreshToken)
		if presented == "" {
			middleware.Fail(c, apperr.Validation("Refresh token required."))
			return
		}

		// Any verification failure collapses to 401 here, unlike login's
		// 400/401 split; inherited behavior.
		payload, err := token.Verify(presented, refreshSecret)
		if err != nil {
			log.Println("[AUTH] [ERROR] refresh verification failed:", err)
			middleware.Fail(c, apperr.Unauthorized("Invalid or expired refresh token."))
			return
		}

		uid, _ := payload["uid"].(string)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			log.Println("[AUTH] [ERROR] refresh uid claim invalid")
			middleware.Fail(c, apperr.Unauthorized("Invalid or expired refresh token."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindOne(ctx, bson.M{"_id": userID})
		if err != nil {
			log.Println("[AUTH] [ERROR] refresh lookup failed:", err)
			middleware.Fail(c, apperr.Unauthorized("Invalid or expired refresh token."))
			return
		}
		// 403 signals a stale or superseded token rather than "not
		// authenticated at all".
		if user == nil || user.RefreshToken == nil || *user.RefreshToken != presented {
			log.Println("[AUTH] [ERROR] refresh token stale or superseded")
			middleware.Fail(c, apperr.Forbidden("Invalid refresh token."))
			return
		}

		pair, err := issuer.Issue(token.Payload{"uid": user.ID.Hex()})
		if err != nil {
			log.Println("[AUTH] [ERROR] refresh token generation failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to generate token."))
			return
		}

		updated, err := users.UpdateByID(ctx, user.ID, bson.M{"refreshToken": pair.RefreshToken})
		if err != nil || updated == nil {
			log.Println("[AUTH] [ERROR] refresh rotation persist failed:", err)
			middleware.Fail(c, apperr.Internal("Failed to persist session."))
			return
		}

		log.Println("[AUTH] [INFO] refresh succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Access token refreshed successfully.",
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
	}
}

func setAuthCookie(c *gin.Context, accessToken string, production bool, expiresAt *time.Time) {
	maxAge := 24 * time.Hour
	if expiresAt != nil {
		maxAge = time.Until(*expiresAt)
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, accessToken, int(maxAge.Seconds()), "/", "", production, true)
}

func clearAuthCookie(c *gin.Context, production bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, "", -1, "/", "", production, true)
}
