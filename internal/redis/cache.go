package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore caches JSON-encoded reference data in Redis.
type CacheStore struct {
	client *redis.Client
	prefix string
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client, prefix: "cache:"}
}

// Get decodes the cached value into dest. A miss returns false and no error.
func (s *CacheStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for ttl.
func (s *CacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

// Invalidate removes key from the cache.
func (s *CacheStore) Invalidate(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
