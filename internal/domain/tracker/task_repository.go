package tracker

import (
	"context"

	"github.com/taskboard/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskRepository defines storage operations for tasks. Listings are
// full scans; the result counts of the mutating operations carry the
// store's matched/modified/deleted semantics through to callers.
type TaskRepository interface {
	// FindAll returns all tasks, optionally restricted to an exact status match
	FindAll(ctx context.Context, status *Status) ([]Task, error)

	// FindAllSorted returns all tasks ordered by a whitelisted field
	FindAllSorted(ctx context.Context, field string, dir shared.SortDirection) ([]Task, error)

	// SearchByName returns tasks whose name contains the substring, case-insensitively
	SearchByName(ctx context.Context, substring string) ([]Task, error)

	// FindByProjectID returns all tasks referencing the given project
	FindByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]Task, error)

	// FindByID returns a task or shared.ErrNotFound
	FindByID(ctx context.Context, id primitive.ObjectID) (*Task, error)

	// ExistsByName reports whether any task carries the exact name
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Insert stores a new task and returns its assigned identifier.
	// A unique-index violation surfaces as an ALREADY_EXISTS domain error.
	Insert(ctx context.Context, task *Task) (primitive.ObjectID, error)

	// Update applies the sparse patch and stamps updatedAt; returns the modified count
	Update(ctx context.Context, id primitive.ObjectID, patch TaskPatch) (int64, error)

	// Delete removes the task; returns the deleted count
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	// ApplyStatusChange writes a status transition; returns the modified count
	ApplyStatusChange(ctx context.Context, id primitive.ObjectID, change StatusChange) (int64, error)

	// AssignProject sets the task's project reference; returns the MATCHED
	// count, so assigning an already-assigned task still reports 1
	AssignProject(ctx context.Context, taskID, projectID primitive.ObjectID) (int64, error)

	// UnlinkProject clears the project reference on every task pointing at
	// projectID; returns the number of tasks unlinked
	UnlinkProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
}
