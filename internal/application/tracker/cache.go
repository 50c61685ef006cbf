package tracker

import (
	"context"

	"github.com/taskboard/backend/internal/domain/tracker"
)

// TaskListCache caches the unfiltered task listing. A cache miss is
// signalled with a nil slice and nil error; cache failures never fail
// the serving path, they only cost a storage round trip.
type TaskListCache interface {
	GetList(ctx context.Context) ([]tracker.Task, error)
	SetList(ctx context.Context, tasks []tracker.Task) error
	Invalidate(ctx context.Context) error
}
