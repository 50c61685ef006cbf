package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskboard/backend/internal/application/tracker"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewTaskListCache creates the task list cache the services consume.
// With Redis enabled it connects and verifies the connection; otherwise,
// or when Redis is unreachable, it falls back to the in-memory cache so
// a cache outage never takes the service down with it.
func NewTaskListCache(cfg config.RedisConfig, logger *zap.Logger) tracker.TaskListCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory task list cache")
		return NewInMemoryTaskListCache(cfg.CacheTTL)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory task list cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		_ = rdb.Close()
		return NewInMemoryTaskListCache(cfg.CacheTTL)
	}

	logger.Info("Connected to Redis", zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)))
	return NewRedisTaskListCache(rdb, cfg.CacheTTL)
}
