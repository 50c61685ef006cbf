package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/domain/shared"
	"github.com/taskboard/backend/internal/domain/tracker"
)

// Walks a task and its project through their whole life: create both,
// assign, finish the task, delete the project and verify the task is
// unlinked rather than deleted.
func TestTrackerLifecycle(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	projectRepo := new(MockProjectRepository)

	taskService := NewTaskService(taskRepo, projectRepo, nil, nil)
	projectService := NewProjectService(projectRepo, taskRepo, shared.NopTxRunner{}, nil, nil)

	ctx := context.Background()
	projectID := newTestProjectID()
	taskID := newTestTaskID()

	// Create project "Alpha"
	projectRepo.On("ExistsByName", ctx, "Alpha").Return(false, nil)
	projectRepo.On("Insert", ctx, mock.AnythingOfType("*tracker.Project")).Return(projectID, nil)

	project, err := projectService.Create(ctx, CreateProjectRequest{
		Name:      "Alpha",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, projectID.Hex(), project.ID)

	// Create task "Design", always born TODO
	taskRepo.On("ExistsByName", ctx, "Design").Return(false, nil)
	taskRepo.On("Insert", ctx, mock.AnythingOfType("*tracker.Task")).Return(taskID, nil)

	task, err := taskService.Create(ctx, CreateTaskRequest{
		Name:      "Design",
		StartDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, taskID.Hex(), task.ID)
	assert.Equal(t, string(tracker.StatusTodo), task.Status)

	// Assign the task to the project
	projectRepo.On("ExistsByID", ctx, projectID).Return(true, nil)
	taskRepo.On("AssignProject", ctx, taskID, projectID).Return(int64(1), nil)

	matched, err := taskService.AssignToProject(ctx, taskID.Hex(), projectID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	// Finish the task; the transition must carry a done timestamp
	before := time.Now()
	taskRepo.On("ApplyStatusChange", ctx, taskID, mock.MatchedBy(func(change tracker.StatusChange) bool {
		return change.Status == tracker.StatusDone &&
			change.DoneDate != nil && !change.DoneDate.Before(before) &&
			change.StartDate == nil
	})).Return(int64(1), nil)

	modified, err := taskService.SetStatus(ctx, taskID.Hex(), tracker.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	// Delete the project; the task survives with its reference unlinked
	projectRepo.On("Delete", ctx, projectID).Return(int64(1), nil)
	taskRepo.On("UnlinkProject", ctx, projectID).Return(int64(1), nil)

	deleted, err := projectService.Delete(ctx, projectID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	taskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	taskRepo.AssertExpectations(t)
	projectRepo.AssertExpectations(t)
}
