package tracker

import (
	"time"

	"github.com/taskboard/backend/internal/domain/tracker"
)

// CreateTaskRequest represents a request to create a new task. A status
// value supplied by the client is ignored: tasks always start as TODO.
type CreateTaskRequest struct {
	Name      string    `json:"name" binding:"required,min=3,max=50"`
	StartDate time.Time `json:"start_date" binding:"required"`
	DueDate   time.Time `json:"due_date" binding:"required"`
	Status    string    `json:"status" binding:"omitempty,oneof=TODO DONE"`
}

// UpdateTaskRequest represents a sparse task update; absent fields are
// left untouched in storage
type UpdateTaskRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=3,max=50"`
	Status    *string    `json:"status" binding:"omitempty,oneof=TODO DONE"`
	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`
}

// SetTaskStatusRequest represents a status transition request
type SetTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=TODO DONE"`
}

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=50"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

// UpdateProjectRequest represents a sparse project update
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=50"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	DueDate   time.Time  `json:"due_date"`
	DoneDate  *time.Time `json:"done_date,omitempty"`
	ProjectID *string    `json:"project_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTaskResponse converts a domain Task to TaskResponse
func ToTaskResponse(t *tracker.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID.Hex(),
		Name:      t.Name,
		Status:    string(t.Status),
		StartDate: t.StartDate,
		DueDate:   t.DueDate,
		DoneDate:  t.DoneDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.ProjectID != nil {
		id := t.ProjectID.Hex()
		resp.ProjectID = &id
	}
	return resp
}

// ToTaskResponses converts a slice of domain Tasks
func ToTaskResponses(tasks []tracker.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToTaskResponse(&tasks[i])
	}
	return responses
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *tracker.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectResponses converts a slice of domain Projects
func ToProjectResponses(projects []tracker.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}
