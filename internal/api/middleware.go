package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samvad-hq/echohub-buster/internal/logger"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id, reusing a client-supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	log = logger.Ensure(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.InfoObj("http request", "http", map[string]any{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
	}
}

// Recovery turns panics into the generic 500 body.
func Recovery(log logger.Logger) gin.HandlerFunc {
	log = logger.Ensure(log)
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorObj("panic while handling request", "panic", map[string]any{
			"request_id": c.GetString(requestIDKey),
			"path":       c.Request.URL.Path,
			"recovered":  recovered,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: MsgUnexpected})
	})
}
