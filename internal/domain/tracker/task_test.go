package tracker

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates task with valid inputs", func(t *testing.T) {
		task, err := NewTask("Design", start, due)
		require.NoError(t, err)
		require.NotNil(t, task)

		assert.Equal(t, "Design", task.Name)
		assert.Equal(t, StatusTodo, task.Status)
		assert.Equal(t, start, task.StartDate)
		assert.Equal(t, due, task.DueDate)
		assert.Nil(t, task.DoneDate)
		assert.Nil(t, task.ProjectID)
		assert.True(t, task.ID.IsZero())
	})

	t.Run("createdAt equals updatedAt at creation", func(t *testing.T) {
		task, err := NewTask("Design", start, due)
		require.NoError(t, err)
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
		assert.WithinDuration(t, time.Now(), task.CreatedAt, time.Second)
	})

	t.Run("fails with name too short", func(t *testing.T) {
		_, err := NewTask("ab", start, due)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 3 and 50 characters")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewTask(strings.Repeat("x", MaxNameLength+1), start, due)
		require.Error(t, err)
	})

	t.Run("accepts boundary lengths", func(t *testing.T) {
		_, err := NewTask(strings.Repeat("x", MinNameLength), start, due)
		assert.NoError(t, err)
		_, err = NewTask(strings.Repeat("x", MaxNameLength), start, due)
		assert.NoError(t, err)
	})
}

func TestNewStatusChange(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("DONE stamps doneDate and leaves startDate alone", func(t *testing.T) {
		change := NewStatusChange(StatusDone, now)
		assert.Equal(t, StatusDone, change.Status)
		require.NotNil(t, change.DoneDate)
		assert.Equal(t, now, *change.DoneDate)
		assert.Nil(t, change.StartDate)
		assert.Equal(t, now, change.UpdatedAt)
	})

	t.Run("TODO restarts the active window and never clears doneDate", func(t *testing.T) {
		change := NewStatusChange(StatusTodo, now)
		assert.Equal(t, StatusTodo, change.Status)
		require.NotNil(t, change.StartDate)
		assert.Equal(t, now, *change.StartDate)
		assert.Nil(t, change.DoneDate)
	})
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusTodo.IsValid())
	assert.True(t, StatusDone.IsValid())
	assert.False(t, Status("CANCELLED").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestTaskPatchIsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())

	name := "Renamed"
	assert.False(t, TaskPatch{Name: &name}.IsEmpty())
}

func TestTaskSortFields(t *testing.T) {
	for _, field := range []string{"name", "status", "startDate", "dueDate", "doneDate", "createdAt", "updatedAt"} {
		assert.True(t, TaskSortFields[field], field)
	}
	assert.False(t, TaskSortFields["projectId"])
	assert.False(t, TaskSortFields["bogus"])
}
