package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskboard/backend/internal/domain/tracker"
)

const taskListKey = "tasks:list"

// RedisTaskListCache caches the unfiltered task listing in Redis.
// Filtered and sorted listings always hit storage.
type RedisTaskListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisTaskListCache returns a new RedisTaskListCache
func NewRedisTaskListCache(rdb *redis.Client, ttl time.Duration) *RedisTaskListCache {
	return &RedisTaskListCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing, or nil on a miss
func (c *RedisTaskListCache) GetList(ctx context.Context) ([]tracker.Task, error) {
	b, err := c.rdb.Get(ctx, taskListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []tracker.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SetList stores the listing with the configured TTL
func (c *RedisTaskListCache) SetList(ctx context.Context, tasks []tracker.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, taskListKey, b, c.ttl).Err()
}

// Invalidate drops the cached listing
func (c *RedisTaskListCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, taskListKey).Err()
}
