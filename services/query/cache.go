package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"padelwatch/models"

	"github.com/go-redis/redis/v8"
)

// SnapshotCache stores the ad hoc slot snapshots of the query surface, one
// entry per distinct query criteria.
type SnapshotCache interface {
	// Load returns the cached slot set for key, or nil when absent.
	Load(ctx context.Context, key string) ([]models.Slot, error)
	// Store replaces the cached slot set for key.
	Store(ctx context.Context, key string, slots []models.Slot, ttl time.Duration) error
}

// RedisSnapshotCache implements SnapshotCache on a Redis client.
type RedisSnapshotCache struct {
	Client *redis.Client
}

func (c *RedisSnapshotCache) Load(ctx context.Context, key string) ([]models.Slot, error) {
	data, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}

	var slots []models.Slot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return slots, nil
}

func (c *RedisSnapshotCache) Store(ctx context.Context, key string, slots []models.Slot, ttl time.Duration) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", key, err)
	}
	return nil
}
