package tracker

import (
	"context"

	"github.com/taskboard/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectRepository defines storage operations for projects
type ProjectRepository interface {
	// FindAll returns all projects, unfiltered
	FindAll(ctx context.Context) ([]Project, error)

	// FindAllSorted returns all projects ordered by a whitelisted field
	FindAllSorted(ctx context.Context, field string, dir shared.SortDirection) ([]Project, error)

	// FindByID returns a project or shared.ErrNotFound
	FindByID(ctx context.Context, id primitive.ObjectID) (*Project, error)

	// FindByNameSubstring resolves a case-insensitive substring to a single
	// project. When several projects match, the earliest-created one wins;
	// no match returns shared.ErrNotFound.
	FindByNameSubstring(ctx context.Context, substring string) (*Project, error)

	// ExistsByName reports whether any project carries the exact name
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByID reports whether the project exists
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Insert stores a new project and returns its assigned identifier.
	// A unique-index violation surfaces as an ALREADY_EXISTS domain error.
	Insert(ctx context.Context, project *Project) (primitive.ObjectID, error)

	// Update applies the sparse patch and stamps updatedAt; returns the modified count
	Update(ctx context.Context, id primitive.ObjectID, patch ProjectPatch) (int64, error)

	// Delete removes the project; returns the deleted count. Cascade
	// unlinking of task references is the caller's responsibility.
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
