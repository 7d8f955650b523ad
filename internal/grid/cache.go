package grid

import (
	"context"
	"encoding/json"
	"time"

	"gridspot/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "grid:snapshot:v1"

// SnapshotCache keeps the rendered occupancy snapshot in Redis. Misses and
// Redis failures both fall through to a fresh database build; every state
// transition that changes occupancy invalidates the key.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or nil on miss or Redis failure
func (c *SnapshotCache) Get(ctx context.Context) *Snapshot {
	raw, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetDefault().Warn("Grid snapshot cache read failed", "error", err)
		}
		return nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

// Set stores the snapshot with the configured TTL; failures are logged and
// swallowed
func (c *SnapshotCache) Set(ctx context.Context, snapshot *Snapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		logger.GetDefault().Warn("Grid snapshot cache write failed", "error", err)
	}
}

// Invalidate drops the cached snapshot. Implements the cache hook the
// booking, offer, sweeper and admin paths call after occupancy changes.
func (c *SnapshotCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		logger.GetDefault().Warn("Grid snapshot invalidation failed", "error", err)
	}
}
