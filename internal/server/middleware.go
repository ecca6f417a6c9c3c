package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogger logs one line per request with a generated request id.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		start := time.Now()

		c.Next()

		slog.Info("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// maxInFlight limits how many requests run the wrapped handlers at
// once. Excess requests wait their turn instead of being rejected.
func maxInFlight(limit int) gin.HandlerFunc {
	slots := make(chan struct{}, limit)
	return func(c *gin.Context) {
		slots <- struct{}{}
		defer func() { <-slots }()
		c.Next()
	}
}
