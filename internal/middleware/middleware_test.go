package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bookingdesk/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
	keys []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = string(value.([]byte))
	m.keys = append(m.keys, key)
	return redis.NewStatusResult("OK", nil)
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
	}{
		{"generated", ""},
		{"echoed", "req-123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.Use(RequestIDMiddleware())
			var seen string
			r.GET("/ping", func(c *gin.Context) {
				seen = RequestID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(requestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(requestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("expected header to match context id, got %q and %q", got, seen)
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("expected %q echoed, got %q", tt.incoming, got)
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})

	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware(log))
	r.GET("/v1/sessions/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess-1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"status":404`, `"session_id":"sess-1"`, `"path":"/v1/sessions/:id"`, "request rejected"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("expected log to contain %s, got %s", want, out)
		}
	}
}

func TestIdempotencyMiddleware_ReplaysResponse(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()

	var calls int32
	r := gin.New()
	r.Use(IdempotencyMiddleware(store, nil))
	r.POST("/v1/sessions/:id/confirm", func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusCreated, gin.H{"call": n})
	})
	r.POST("/v1/sessions/:id/pricing", func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"pricing": true})
	})

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(idempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send("/v1/sessions/s1/confirm")
	second := send("/v1/sessions/s1/confirm")
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("expected 201 twice, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("expected replayed body, got %s and %s", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("expected replay header")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected handler called once, got %d", n)
	}

	// Same key on another route is independent.
	if w := send("/v1/sessions/s1/pricing"); w.Code != http.StatusOK {
		t.Errorf("expected pricing 200, got %d", w.Code)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected handler called twice, got %d", n)
	}
}

func TestIdempotencyMiddleware_SkipsServerErrors(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()

	r := gin.New()
	r.Use(IdempotencyMiddleware(store, nil))
	r.POST("/fail", func(c *gin.Context) { c.JSON(http.StatusBadGateway, gin.H{"error": "upstream"}) })

	req := httptest.NewRequest(http.MethodPost, "/fail", nil)
	req.Header.Set(idempotencyHeader, "key-2")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if len(store.keys) != 0 {
		t.Errorf("expected nothing cached, got %v", store.keys)
	}
}

func TestIdempotencyMiddleware_KeysScopedToSession(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()

	var calls int32
	r := gin.New()
	r.Use(IdempotencyMiddleware(store, nil))
	r.DELETE("/v1/sessions/:id/segments/:index", func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"session": c.Param("id")})
	})

	for _, path := range []string{"/v1/sessions/s1/segments/1", "/v1/sessions/s1/segments/1", "/v1/sessions/s2/segments/1"} {
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		req.Header.Set(idempotencyHeader, "key-3")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected one removal per session, got %d", n)
	}
	if _, ok := store.data[routeScopedKey(http.MethodDelete, "/v1/sessions/s2/segments/1", "key-3")]; !ok {
		t.Errorf("expected second session stored under its own key, got %v", store.keys)
	}
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		method string
		want   bool
	}{
		{http.MethodGet, false},
		{http.MethodHead, false},
		{http.MethodPost, true},
		{http.MethodPut, true},
		{http.MethodPatch, true},
		{http.MethodDelete, true},
	}
	for _, tc := range testCases {
		if got := isCommand(tc.method); got != tc.want {
			t.Errorf("isCommand(%s) = %v, want %v", tc.method, got, tc.want)
		}
	}
}
