package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// AvailabilityCache keeps serialized availability responses per
// (provider, date). Stale operating hours would make the engine offer
// invalid slots, so every schedule mutation and every booking state
// change must invalidate synchronously before returning to the caller.
// A nil *AvailabilityCache is a valid no-op cache (Redis not configured).
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func New(rdb *redis.Client, logger zerolog.Logger) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	return &AvailabilityCache{
		rdb: rdb,
		ttl: 60 * time.Second,
		log: logger,
	}
}

func dayKey(providerID uint, date string) string {
	return fmt.Sprintf("avail:%d:%s", providerID, date)
}

func (c *AvailabilityCache) Get(ctx context.Context, providerID uint, date string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, dayKey(providerID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *AvailabilityCache) Set(ctx context.Context, providerID uint, date string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, dayKey(providerID, date), payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache write failed")
	}
}

// InvalidateDay drops the cached response for one provider-local date.
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, providerID uint, date string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, dayKey(providerID, date)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}

// InvalidateProvider drops every cached date for a provider. Used when
// schedule configuration changes (operating hours, breaks, slot duration),
// since those affect all future dates.
func (c *AvailabilityCache) InvalidateProvider(ctx context.Context, providerID uint) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("avail:%d:*", providerID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Msg("availability cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache scan failed")
	}
}
