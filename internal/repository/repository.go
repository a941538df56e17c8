package repository

import (
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(page, pageSize int) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user and clears the assignee reference on
	// their tasks within a single transaction
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)
	List() ([]models.Project, error)
	Update(project *models.Project) error

	// Delete removes a project and all of its tasks within a single
	// transaction
	Delete(id uint64) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	FindByID(id uint64) (*models.Category, error)
	List() ([]models.Category, error)
	Update(category *models.Category) error

	// Delete removes a category and nulls the category reference on
	// dependent tasks within a single transaction
	Delete(id uint64) error
}

// PriorityRepository defines the interface for priority data access
type PriorityRepository interface {
	Create(priority *models.Priority) error
	FindByID(id uint64) (*models.Priority, error)
	List() ([]models.Priority, error)
	Update(priority *models.Priority) error

	// Delete removes a priority and nulls the priority reference on
	// dependent tasks within a single transaction
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *uint64
	CategoryID *uint64
	PriorityID *uint64
	AssigneeID *uint64
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	Update(task *models.Task) error
	Delete(id uint64) error
}

// paginate applies page/pageSize to a query when both are set.
func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page > 0 && pageSize > 0 {
			return db.Offset((page - 1) * pageSize).Limit(pageSize)
		}
		return db
	}
}
