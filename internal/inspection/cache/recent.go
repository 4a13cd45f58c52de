// Package cache keeps a short-lived Redis copy of the duplicate window so
// repeated submissions within the same shift avoid a warehouse round trip.
// The store stays authoritative; every cache path is best effort and a miss
// or Redis failure falls back to the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"donorcheck/internal/inspection/models"
	"donorcheck/internal/inspection/store"
)

// DefaultTTL matches the practical double-submit window: long enough to
// cover a form re-submit, short enough that edits don't serve stale rows.
const DefaultTTL = 5 * time.Minute

type RecentCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRecentCache wraps a Redis client. A nil client yields a disabled cache
// whose Get always misses, so callers need no nil checks.
func NewRecentCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RecentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RecentCache{client: client, ttl: ttl, logger: logger}
}

// key includes the limit: windows of different sizes are different entries,
// so a short caller-limited read can never truncate the dedupe window.
func (c *RecentCache) key(filter store.RecentFilter) string {
	return fmt.Sprintf("donorcheck:recent:%s:%s:%d", filter.FormDate.Format(models.DateFormat), filter.InspectorName, filter.Limit)
}

// Get returns the cached window and true on a hit.
func (c *RecentCache) Get(ctx context.Context, filter store.RecentFilter) ([]models.InspectionRecord, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(filter)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "recent cache read failed", "error", err)
		}
		return nil, false
	}
	var records []models.InspectionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.WarnContext(ctx, "recent cache entry corrupt, dropping", "error", err)
		c.client.Del(ctx, c.key(filter))
		return nil, false
	}
	return records, true
}

// Put stores a freshly queried window.
func (c *RecentCache) Put(ctx context.Context, filter store.RecentFilter, records []models.InspectionRecord) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		c.logger.WarnContext(ctx, "recent cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(filter), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "recent cache write failed", "error", err)
	}
}

// Invalidate drops the window after an insert or edit touching it.
func (c *RecentCache) Invalidate(ctx context.Context, filter store.RecentFilter) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(filter)).Err(); err != nil {
		c.logger.WarnContext(ctx, "recent cache invalidate failed", "error", err)
	}
}
