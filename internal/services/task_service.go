package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard-api/internal/authz"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskTitleEmpty       = errors.New("title is required")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrAssigneeNotFound     = errors.New("assignee not found")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo     repository.TaskRepository
	projectRepo  repository.ProjectRepository
	categoryRepo repository.CategoryRepository
	priorityRepo repository.PriorityRepository
	userRepo     repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	categoryRepo repository.CategoryRepository,
	priorityRepo repository.PriorityRepository,
	userRepo repository.UserRepository,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		priorityRepo: priorityRepo,
		userRepo:     userRepo,
	}
}

// Actor identifies who is performing an operation.
type Actor struct {
	UserID uint64
	Role   models.Role
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	ProjectID   uint64
	CategoryID  *uint64
	PriorityID  *uint64
	AssigneeID  *uint64
}

// CreateTask validates referenced records and stores a new task.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleEmpty
	}

	if err := s.checkReferences(input.ProjectID, input.CategoryID, input.PriorityID, input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		CategoryID:  input.CategoryID,
		PriorityID:  input.PriorityID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update. Clear flags reset
// an optional reference to null.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	ProjectID     *uint64
	CategoryID    *uint64
	ClearCategory bool
	PriorityID    *uint64
	ClearPriority bool
	AssigneeID    *uint64
	ClearAssignee bool
}

// UpdateTask applies a partial update. Employees may only modify tasks
// assigned to them.
func (s *TaskService) UpdateTask(actor Actor, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyTask(actor.Role, actor.UserID, task) {
		return nil, ErrTaskPermissionDenied
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTaskTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ProjectID != nil {
		task.ProjectID = *input.ProjectID
	}
	if input.ClearCategory {
		task.CategoryID = nil
	} else if input.CategoryID != nil {
		task.CategoryID = input.CategoryID
	}
	if input.ClearPriority {
		task.PriorityID = nil
	} else if input.PriorityID != nil {
		task.PriorityID = input.PriorityID
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}

	if err := s.checkReferences(task.ProjectID, task.CategoryID, task.PriorityID, task.AssigneeID); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task. Employees may only delete tasks assigned
// to them.
func (s *TaskService) DeleteTask(actor Actor, id uint64) error {
	task, err := s.findTask(id)
	if err != nil {
		return err
	}

	if !authz.CanModifyTask(actor.Role, actor.UserID, task) {
		return ErrTaskPermissionDenied
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask retrieves a task with its relations preloaded.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Project", "Category", "Priority", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) findTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// checkReferences verifies every referenced record exists before a
// task write so broken foreign keys surface as not-found errors.
func (s *TaskService) checkReferences(projectID uint64, categoryID, priorityID, assigneeID *uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to check project: %w", err)
	}

	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(*categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("failed to check category: %w", err)
		}
	}

	if priorityID != nil {
		if _, err := s.priorityRepo.FindByID(*priorityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPriorityNotFound
			}
			return fmt.Errorf("failed to check priority: %w", err)
		}
	}

	if assigneeID != nil {
		if _, err := s.userRepo.FindByID(*assigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssigneeNotFound
			}
			return fmt.Errorf("failed to check assignee: %w", err)
		}
	}

	return nil
}
