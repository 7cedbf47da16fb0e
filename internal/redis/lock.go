package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore guards calculation confirmation across replicas.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireConfirmLock attempts to take the confirmation lock for a calculation.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireConfirmLock(ctx context.Context, calculationID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:confirm:%s", calculationID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseConfirmLock releases the confirmation lock for a calculation.
func (s *LockStore) ReleaseConfirmLock(ctx context.Context, calculationID string) error {
	key := fmt.Sprintf("lock:confirm:%s", calculationID)

	return s.client.Del(ctx, key).Err()
}

// MarkConsumed records that a calculation produced a booking.
func (s *LockStore) MarkConsumed(ctx context.Context, calculationID, bookingID string, ttl time.Duration) error {
	key := fmt.Sprintf("consumed:calculation:%s", calculationID)

	return s.client.Set(ctx, key, bookingID, ttl).Err()
}

// ConsumedBy returns the booking a calculation was already converted into.
func (s *LockStore) ConsumedBy(ctx context.Context, calculationID string) (string, bool, error) {
	key := fmt.Sprintf("consumed:calculation:%s", calculationID)

	bookingID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}

	return bookingID, true, nil
}
