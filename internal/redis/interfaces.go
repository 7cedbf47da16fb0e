package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines JSON caching operations.
type CacheStoreInterface interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// LockStoreInterface defines the confirmation lock and consumed-calculation markers.
type LockStoreInterface interface {
	AcquireConfirmLock(ctx context.Context, calculationID string, ttl time.Duration) (bool, error)
	ReleaseConfirmLock(ctx context.Context, calculationID string) error
	MarkConsumed(ctx context.Context, calculationID, bookingID string, ttl time.Duration) error
	ConsumedBy(ctx context.Context, calculationID string) (string, bool, error)
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
