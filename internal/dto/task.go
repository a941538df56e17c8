package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *string      `json:"due_date"`
	ProjectID   uint64       `json:"project_id"`
	CategoryID  *uint64      `json:"category_id"`
	PriorityID  *uint64      `json:"priority_id"`
	AssigneeID  *uint64      `json:"assignee_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Project     *ProjectDTO  `json:"project,omitempty"`
	Category    *CategoryDTO `json:"category,omitempty"`
	Priority    *PriorityDTO `json:"priority,omitempty"`
	Assignee    *UserDTO     `json:"assignee,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		CategoryID:  task.CategoryID,
		PriorityID:  task.PriorityID,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.DueDate != nil {
		due := task.DueDate.Format(constants.DateLayout)
		dto.DueDate = &due
	}

	// Include relations if preloaded
	if task.Project.ID != 0 {
		project := ToProjectDTO(task.Project)
		dto.Project = &project
	}
	if task.Category != nil {
		category := ToCategoryDTO(*task.Category)
		dto.Category = &category
	}
	if task.Priority != nil {
		priority := ToPriorityDTO(*task.Priority)
		dto.Priority = &priority
	}
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
