package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"authbackend/internal/config"
	"authbackend/internal/database"
	"authbackend/internal/handlers"
	"authbackend/internal/hash"
	"authbackend/internal/middleware"
	"authbackend/internal/store"
	"authbackend/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}

	users := store.NewUsers(db)
	hasher := hash.New(cfg.SaltRounds)

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())

	r.GET("/health", handlers.Health(db))

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register(users, hasher, cfg.JWTSecret, cfg.RegisterTokenTTL))
		auth.POST("/login", handlers.Login(users, hasher, issuer, cfg.Production))
		auth.POST("/refresh", handlers.Refresh(users, issuer, cfg.JWTRefreshSecret))
		auth.POST("/logout", middleware.Authenticate(users, cfg.JWTSecret), handlers.Logout(users, cfg.Production))
	}

	userRoutes := r.Group("/users")
	userRoutes.Use(middleware.Authenticate(users, cfg.JWTSecret))
	{
		userRoutes.GET("/me", handlers.GetMe())
		userRoutes.GET("", middleware.RequireAdmin(), handlers.ListUsers(users))
		userRoutes.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteUser(users))
	}

	r.Run(":" + cfg.Port)
}
