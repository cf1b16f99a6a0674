package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"authbackend/internal/apperr"
)

// ErrorHandler renders every error pushed through c.Error as the standard
// {"success": false, "message": ...} body. Non-operational errors and raw
// downstream errors are logged in full but surface only a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperr.Error
		if !errors.As(err, &appErr) {
			log.Println("[ERROR] unhandled error:", err)
			appErr = apperr.Internal("Something went wrong!")
		} else if !appErr.IsOperational {
			log.Println("[ERROR] non-operational error:", err)
			appErr = apperr.Internal("Something went wrong!")
		}

		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"message": appErr.Message,
		})
	}
}

// Fail records err on the context and aborts the handler chain; the response
// itself is written by ErrorHandler.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
