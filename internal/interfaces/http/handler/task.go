package handler

import (
	"github.com/gin-gonic/gin"
	trackerapp "github.com/taskboard/backend/internal/application/tracker"
	"github.com/taskboard/backend/internal/domain/tracker"
	"github.com/taskboard/backend/internal/interfaces/http/dto"
	"github.com/taskboard/backend/internal/interfaces/http/router"
)

// TaskHandler handles task-related API endpoints
type TaskHandler struct {
	BaseHandler
	taskService *trackerapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *trackerapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Routes returns the route group for tasks
func (h *TaskHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("tasks", "/tasks")
	g.GET("", h.List)
	g.GET("/sort", h.ListSorted)
	g.GET("/search", h.Search)
	g.GET("/filter", h.ListByProject)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PATCH("/:id/status", h.SetStatus)
	g.PATCH("/:id/project/:projectId", h.AssignToProject)
	return g
}

// List returns all tasks, optionally filtered by exact status via ?status=
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tasks)
}

// ListSorted returns all tasks ordered by ?sortField= and ?sortOrder=
func (h *TaskHandler) ListSorted(c *gin.Context) {
	tasks, err := h.taskService.ListSorted(c.Request.Context(), c.Query("sortField"), c.Query("sortOrder"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tasks)
}

// Search returns tasks whose name contains ?name=, case-insensitively
func (h *TaskHandler) Search(c *gin.Context) {
	tasks, err := h.taskService.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tasks)
}

// ListByProject returns the tasks of the project matched by ?projectName=
func (h *TaskHandler) ListByProject(c *gin.Context) {
	tasks, err := h.taskService.ListByProjectName(c.Request.Context(), c.Query("projectName"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tasks)
}

// Create creates a new task; status always starts as TODO
func (h *TaskHandler) Create(c *gin.Context) {
	var req trackerapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, task)
}

// Update partially updates a task and reports the modified count
func (h *TaskHandler) Update(c *gin.Context) {
	var req trackerapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	modified, err := h.taskService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.CountData{Count: modified})
}

// Delete removes a task and reports the deleted count
func (h *TaskHandler) Delete(c *gin.Context) {
	deleted, err := h.taskService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.CountData{Count: deleted})
}

// SetStatus transitions a task between TODO and DONE
func (h *TaskHandler) SetStatus(c *gin.Context) {
	var req trackerapp.SetTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	modified, err := h.taskService.SetStatus(c.Request.Context(), c.Param("id"), tracker.Status(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.CountData{Count: modified})
}

// AssignToProject links a task to an existing project
func (h *TaskHandler) AssignToProject(c *gin.Context) {
	matched, err := h.taskService.AssignToProject(c.Request.Context(), c.Param("id"), c.Param("projectId"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.CountData{Count: matched})
}
