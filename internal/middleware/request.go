package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"

	"bookingdesk/internal/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware assigns each request an id, echoing the caller's
// X-Request-ID when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		if txn := nrgin.Transaction(c); txn != nil {
			txn.AddAttribute("requestId", requestID)
			if id := c.Param("id"); id != "" {
				txn.AddAttribute("sessionId", id)
			}
		}

		c.Next()
	}
}

// RequestID returns the id assigned by RequestIDMiddleware.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// LoggingMiddleware writes one structured log line per request.
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithRequestID(RequestID(c)).WithFields(map[string]any{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if id := c.Param("id"); id != "" {
			entry = entry.WithSession(id)
		}
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last().Err).Error("request failed")
			return
		}
		if c.Writer.Status() >= 400 {
			entry.Warn("request rejected")
			return
		}
		entry.Info("request handled")
	}
}
