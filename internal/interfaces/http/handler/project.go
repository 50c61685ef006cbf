package handler

import (
	"github.com/gin-gonic/gin"
	trackerapp "github.com/taskboard/backend/internal/application/tracker"
	"github.com/taskboard/backend/internal/interfaces/http/dto"
	"github.com/taskboard/backend/internal/interfaces/http/router"
)

// ProjectHandler handles project-related API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *trackerapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *trackerapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Routes returns the route group for projects
func (h *ProjectHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("projects", "/projects")
	g.GET("", h.List)
	g.GET("/sort", h.ListSorted)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}

// List returns all projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, projects)
}

// ListSorted returns all projects ordered by ?sortField= and ?sortOrder=
func (h *ProjectHandler) ListSorted(c *gin.Context) {
	projects, err := h.projectService.ListSorted(c.Request.Context(), c.Query("sortField"), c.Query("sortOrder"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, projects)
}

// Create creates a new project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req trackerapp.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, project)
}

// Update partially updates a project and reports the modified count
func (h *ProjectHandler) Update(c *gin.Context) {
	var req trackerapp.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	modified, err := h.projectService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.CountData{Count: modified})
}

// Delete removes a project and unlinks its tasks; reports the deleted count
func (h *ProjectHandler) Delete(c *gin.Context) {
	deleted, err := h.projectService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.CountData{Count: deleted})
}
