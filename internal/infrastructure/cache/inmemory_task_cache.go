package cache

import (
	"context"
	"sync"
	"time"

	"github.com/taskboard/backend/internal/domain/tracker"
)

// InMemoryTaskListCache is an in-process task list cache for
// single-instance deployments and tests. State is not shared across
// processes, so invalidations on one instance do not reach another.
type InMemoryTaskListCache struct {
	mu        sync.RWMutex
	tasks     []tracker.Task
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryTaskListCache returns a new InMemoryTaskListCache
func NewInMemoryTaskListCache(ttl time.Duration) *InMemoryTaskListCache {
	return &InMemoryTaskListCache{ttl: ttl}
}

// GetList returns the cached listing, or nil on a miss or after expiry
func (c *InMemoryTaskListCache) GetList(_ context.Context) ([]tracker.Task, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.tasks == nil || time.Now().After(c.expiresAt) {
		return nil, nil
	}
	out := make([]tracker.Task, len(c.tasks))
	copy(out, c.tasks)
	return out, nil
}

// SetList stores the listing with the configured TTL
func (c *InMemoryTaskListCache) SetList(_ context.Context, tasks []tracker.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]tracker.Task, len(tasks))
	copy(stored, tasks)
	c.tasks = stored
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

// Invalidate drops the cached listing
func (c *InMemoryTaskListCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tasks = nil
	return nil
}
