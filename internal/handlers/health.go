package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var startedAt = time.Now()

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

// Health reports service liveness, uptime and database reachability.
func Health(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "OK"
		code := http.StatusOK
		if db != nil {
			if err := ensureDBConnection(c.Request.Context(), db); err != nil {
				status = "DEGRADED"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"uptime":    time.Since(startedAt).Seconds(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"message":   "OK",
		})
	}
}
