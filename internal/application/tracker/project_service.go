package tracker

import (
	"context"
	"errors"

	"github.com/taskboard/backend/internal/domain/shared"
	"github.com/taskboard/backend/internal/domain/tracker"
	"go.uber.org/zap"
)

// ProjectService handles project-related business operations, including
// the delete-then-cascade unlink of task references.
type ProjectService struct {
	projectRepo tracker.ProjectRepository
	taskRepo    tracker.TaskRepository
	tx          shared.TxRunner
	cache       TaskListCache
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService. tx must not be nil;
// cache may be (the cascade unlink invalidates the task listing).
func NewProjectService(
	projectRepo tracker.ProjectRepository,
	taskRepo tracker.TaskRepository,
	tx shared.TxRunner,
	cache TaskListCache,
	logger *zap.Logger,
) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		tx:          tx,
		cache:       cache,
		logger:      logger,
	}
}

// List retrieves all projects, unfiltered
func (s *ProjectService) List(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProjectResponses(projects), nil
}

// ListSorted retrieves all projects ordered by the given field; unknown
// sort fields are rejected.
func (s *ProjectService) ListSorted(ctx context.Context, field, order string) ([]ProjectResponse, error) {
	if !tracker.ProjectSortFields[field] {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown sort field: "+field)
	}

	projects, err := s.projectRepo.FindAllSorted(ctx, field, shared.ParseSortDirection(order))
	if err != nil {
		return nil, err
	}
	return ToProjectResponses(projects), nil
}

// Create inserts a new project; a duplicate name fails with ALREADY_EXISTS.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	exists, err := s.projectRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Project with this name already exists")
	}

	project, err := tracker.NewProject(req.Name, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	id, err := s.projectRepo.Insert(ctx, project)
	if err != nil {
		return nil, err
	}
	project.ID = id

	resp := ToProjectResponse(project)
	return &resp, nil
}

// Update applies a sparse patch with the same corrected name-collision
// rule as tasks; returns the modified count.
func (s *ProjectService) Update(ctx context.Context, id string, req UpdateProjectRequest) (int64, error) {
	projectID, err := parseID(id, "project")
	if err != nil {
		return 0, err
	}

	patch := tracker.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if patch.Name != nil {
		current, err := s.projectRepo.FindByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return 0, nil
			}
			return 0, err
		}
		if *patch.Name != current.Name {
			taken, err := s.projectRepo.ExistsByName(ctx, *patch.Name)
			if err != nil {
				return 0, err
			}
			if taken {
				return 0, shared.NewDomainError("ALREADY_EXISTS", "Project with this name already exists")
			}
		}
	}

	return s.projectRepo.Update(ctx, projectID, patch)
}

// Delete removes a project and, iff a document was actually deleted,
// clears the project reference on every task that pointed at it. The
// two steps run inside a transaction when the deployment supports one;
// otherwise the cascade is best-effort (a crash between the steps
// leaves stale references). Returns the deleted count.
func (s *ProjectService) Delete(ctx context.Context, id string) (int64, error) {
	projectID, err := parseID(id, "project")
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted, err = s.projectRepo.Delete(ctx, projectID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return nil
		}

		unlinked, err := s.taskRepo.UnlinkProject(ctx, projectID)
		if err != nil {
			return err
		}
		if unlinked > 0 {
			s.logger.Info("Unlinked tasks from deleted project",
				zap.String("project_id", id),
				zap.Int64("tasks", unlinked),
			)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if deleted > 0 && s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Task list cache invalidation failed", zap.Error(err))
		}
	}

	return deleted, nil
}
