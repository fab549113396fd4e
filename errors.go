package main

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// respondError writes an expected failure (validation, not-found, forbidden,
// conflict, auth) with a precise message.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Not Found",
	})
}

// ErrorRecovery converts panics into a uniform 500 body. The full detail is
// logged server-side; the stack trace is exposed only in development.
func ErrorRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("ERROR: %v", recovered)

		body := gin.H{
			"success": false,
			"message": "Internal Server Error",
		}
		if AppConfig.IsDevelopment() {
			body["stack"] = string(debug.Stack())
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
