// README: Short-TTL slot hold counters backed by Redis.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ghaseel/internal/types"
)

const (
	holdKeyPrefix = "booking:hold:%s:%d"
	// Holds only need to outlive the insert transaction they bracket.
	holdTTL = 2 * time.Minute
)

// HoldStore counts in-flight booking attempts per zone and window start. It
// narrows the check-then-act gap between the advisory availability answer and
// the insert; the transaction's capacity re-check stays authoritative.
type HoldStore struct {
	redis *redis.Client
}

func NewHoldStore(redis *redis.Client) *HoldStore {
	return &HoldStore{redis: redis}
}

// Acquire increments the attempt counter for the window and reports whether
// the attempt is within capacity. Counting attempts rather than taking a
// single lock keeps concurrent bookings for a multi-crew window flowing.
func (h *HoldStore) Acquire(ctx context.Context, zoneID types.ID, start time.Time, capacity int) (bool, error) {
	key := holdKey(zoneID, start)
	pipe := h.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, holdTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	if incr.Val() > int64(capacity) {
		_ = h.redis.Decr(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (h *HoldStore) Release(ctx context.Context, zoneID types.ID, start time.Time) error {
	return h.redis.Decr(ctx, holdKey(zoneID, start)).Err()
}

func holdKey(zoneID types.ID, start time.Time) string {
	return fmt.Sprintf(holdKeyPrefix, string(zoneID), start.Unix())
}
