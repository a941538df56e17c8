package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns all projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// GetProject returns a single project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject stores a new project.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		StartDate   string `json:"start_date" binding:"required"`
		EndDate     string `json:"end_date" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update to a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type UpdateProjectRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project and its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNameEmpty),
		errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
