package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bookingdesk/internal/logger"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
	replayedHeader    = "Idempotent-Replayed"
)

// IdempotencyStore is the part of the Redis client that holds replayable wizard responses.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

var _ IdempotencyStore = (*redis.Client)(nil)

// cachedResponse is a wizard response as stored under its route-scoped key.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter tees the body so the response can be stored after the handler runs.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a wizard command is
// retried with the same Idempotency-Key. The key is scoped to the route, and
// wizard routes carry the session id, so a retried confirm replays its booking
// while the same key sent to another session or command runs normally.
func IdempotencyMiddleware(store IdempotencyStore, log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *gin.Context) {
		if !isCommand(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := routeScopedKey(c.Request.Method, c.Request.URL.Path, key)

		cached, err := getCachedResponse(ctx, store, cacheKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			// Redis unavailable: run the command without replay protection.
			log.WithError(err).WithField("key", cacheKey).Warn("idempotency lookup failed")
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Header(replayedHeader, "true")
			c.Data(cached.StatusCode, "application/json", cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are not stored so the operator can retry them.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 500 {
			response := cachedResponse{
				StatusCode: c.Writer.Status(),
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			if err := setCachedResponse(ctx, store, cacheKey, &response, idempotencyTTL); err != nil {
				log.WithError(err).WithField("key", cacheKey).Warn("idempotency store failed")
			}
		}
	}
}

// getCachedResponse loads a stored response; redis.Nil means none.
func getCachedResponse(ctx context.Context, store IdempotencyStore, key string) (*cachedResponse, error) {
	data, err := store.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

// setCachedResponse stores a response under its route-scoped key.
func setCachedResponse(ctx context.Context, store IdempotencyStore, key string, response *cachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return store.Set(ctx, key, data, ttl).Err()
}

// extractResponseHeaders keeps only the headers needed to replay a JSON body.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}

func isCommand(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// routeScopedKey namespaces an Idempotency-Key by method and path.
func routeScopedKey(method, path, key string) string {
	return "idempotency:" + method + ":" + path + ":" + key
}
