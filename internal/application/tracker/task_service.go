package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/taskboard/backend/internal/domain/shared"
	"github.com/taskboard/backend/internal/domain/tracker"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TaskService handles task-related business operations: uniqueness,
// the point-in-time project reference check, and derived-field stamping.
type TaskService struct {
	taskRepo    tracker.TaskRepository
	projectRepo tracker.ProjectRepository
	cache       TaskListCache
	logger      *zap.Logger
}

// NewTaskService creates a new TaskService. cache may be nil, in which
// case every listing goes to storage.
func NewTaskService(
	taskRepo tracker.TaskRepository,
	projectRepo tracker.ProjectRepository,
	cache TaskListCache,
	logger *zap.Logger,
) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List retrieves all tasks, optionally restricted to an exact status
// match. Full scan, no pagination. The unfiltered listing is served
// through the cache when one is configured.
func (s *TaskService) List(ctx context.Context, statusFilter string) ([]TaskResponse, error) {
	var status *tracker.Status
	if statusFilter != "" {
		st := tracker.Status(statusFilter)
		status = &st
	}

	if status == nil && s.cache != nil {
		if cached, err := s.cache.GetList(ctx); err != nil {
			s.logger.Warn("Task list cache read failed", zap.Error(err))
		} else if cached != nil {
			return ToTaskResponses(cached), nil
		}
	}

	tasks, err := s.taskRepo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	if status == nil && s.cache != nil {
		if err := s.cache.SetList(ctx, tasks); err != nil {
			s.logger.Warn("Task list cache write failed", zap.Error(err))
		}
	}

	return ToTaskResponses(tasks), nil
}

// ListSorted retrieves all tasks ordered by the given field. Unknown
// sort fields are rejected rather than passed through to the store.
func (s *TaskService) ListSorted(ctx context.Context, field, order string) ([]TaskResponse, error) {
	if !tracker.TaskSortFields[field] {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown sort field: "+field)
	}

	tasks, err := s.taskRepo.FindAllSorted(ctx, field, shared.ParseSortDirection(order))
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks), nil
}

// SearchByName returns tasks whose name contains the substring,
// case-insensitively, unranked.
func (s *TaskService) SearchByName(ctx context.Context, substring string) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.SearchByName(ctx, substring)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks), nil
}

// ListByProjectName resolves the substring to a single project
// (earliest-created match wins when several projects match) and returns
// the tasks referencing it. No matching project yields NOT_FOUND.
func (s *TaskService) ListByProjectName(ctx context.Context, projectName string) ([]TaskResponse, error) {
	project, err := s.projectRepo.FindByNameSubstring(ctx, projectName)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByProjectID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks), nil
}

// Create inserts a new task with status forced to TODO and
// createdAt == updatedAt. A duplicate name fails with ALREADY_EXISTS.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	exists, err := s.taskRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Task with this name already exists")
	}

	task, err := tracker.NewTask(req.Name, req.StartDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	id, err := s.taskRepo.Insert(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = id

	s.invalidateCache(ctx)

	resp := ToTaskResponse(task)
	return &resp, nil
}

// Update applies a sparse patch. The name-collision check only fires
// when the patch carries a name different from the stored one; updatedAt
// is stamped regardless of patch contents. Returns the modified count.
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest) (int64, error) {
	taskID, err := parseID(id, "task")
	if err != nil {
		return 0, err
	}

	patch := tracker.TaskPatch{
		StartDate: req.StartDate,
		DueDate:   req.DueDate,
		Name:      req.Name,
	}
	if req.Status != nil {
		st := tracker.Status(*req.Status)
		patch.Status = &st
	}

	if patch.Name != nil {
		current, err := s.taskRepo.FindByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return 0, nil
			}
			return 0, err
		}
		if *patch.Name != current.Name {
			taken, err := s.taskRepo.ExistsByName(ctx, *patch.Name)
			if err != nil {
				return 0, err
			}
			if taken {
				return 0, shared.NewDomainError("ALREADY_EXISTS", "Task with this name already exists")
			}
		}
	}

	modified, err := s.taskRepo.Update(ctx, taskID, patch)
	if err != nil {
		return 0, err
	}

	s.invalidateCache(ctx)
	return modified, nil
}

// Delete removes a task by identifier; returns the deleted count.
func (s *TaskService) Delete(ctx context.Context, id string) (int64, error) {
	taskID, err := parseID(id, "task")
	if err != nil {
		return 0, err
	}

	deleted, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return 0, err
	}

	s.invalidateCache(ctx)
	return deleted, nil
}

// SetStatus transitions a task's status. DONE stamps doneDate, TODO
// restamps startDate (reopening restarts the active window). Validity
// of the status value is enforced upstream by request validation.
func (s *TaskService) SetStatus(ctx context.Context, id string, status tracker.Status) (int64, error) {
	taskID, err := parseID(id, "task")
	if err != nil {
		return 0, err
	}

	change := tracker.NewStatusChange(status, time.Now())
	modified, err := s.taskRepo.ApplyStatusChange(ctx, taskID, change)
	if err != nil {
		return 0, err
	}

	s.invalidateCache(ctx)
	return modified, nil
}

// AssignToProject sets the task's project reference after verifying the
// project exists at assignment time. Returns the MATCH count, so
// re-assigning an already-assigned task still reports 1.
func (s *TaskService) AssignToProject(ctx context.Context, taskID, projectID string) (int64, error) {
	tID, err := parseID(taskID, "task")
	if err != nil {
		return 0, err
	}
	pID, err := parseID(projectID, "project")
	if err != nil {
		return 0, err
	}

	exists, err := s.projectRepo.ExistsByID(ctx, pID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	matched, err := s.taskRepo.AssignProject(ctx, tID, pID)
	if err != nil {
		return 0, err
	}

	s.invalidateCache(ctx)
	return matched, nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Task list cache invalidation failed", zap.Error(err))
	}
}

// parseID converts a hex identifier, mapping malformed input to INVALID_ID
func parseID(id, kind string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, shared.NewDomainError("INVALID_ID", "Invalid "+kind+" ID format")
	}
	return oid, nil
}
