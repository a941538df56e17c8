package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks with optional FK filters and pagination.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	filter.ProjectID = queryID(c, "project_id")
	filter.CategoryID = queryID(c, "category_id")
	filter.PriorityID = queryID(c, "priority_id")
	filter.AssigneeID = queryID(c, "assignee_id")

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a single task with its relations.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask stores a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		ProjectID   uint64  `json:"project" binding:"required"`
		CategoryID  *uint64 `json:"category"`
		PriorityID  *uint64 `json:"priority"`
		AssigneeID  *uint64 `json:"assignee"`
		DueDate     *string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		ProjectID:   req.ProjectID,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Optional references are cleared
// by sending 0; the due date is cleared by sending an empty string.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ProjectID   *uint64 `json:"project"`
		CategoryID  *uint64 `json:"category"`
		PriorityID  *uint64 `json:"priority"`
		AssigneeID  *uint64 `json:"assignee"`
		DueDate     *string `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	}

	if req.DueDate != nil {
		if *req.DueDate == "" {
			input.ClearDueDate = true
		} else {
			dueDate, err := parseDate(*req.DueDate)
			if err != nil {
				apierrors.BadRequest(c, err.Error())
				return
			}
			input.DueDate = &dueDate
		}
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			input.ClearCategory = true
		} else {
			input.CategoryID = req.CategoryID
		}
	}
	if req.PriorityID != nil {
		if *req.PriorityID == 0 {
			input.ClearPriority = true
		} else {
			input.PriorityID = req.PriorityID
		}
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == 0 {
			input.ClearAssignee = true
		} else {
			input.AssigneeID = req.AssigneeID
		}
	}

	task, err := h.taskService.UpdateTask(actor, id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.DeleteTask(actor, id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return services.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, Role: role}, true
}

func queryID(c *gin.Context, name string) *uint64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrPriorityNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
