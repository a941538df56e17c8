package repository

import (
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormPriorityRepository is a GORM implementation of PriorityRepository
type GormPriorityRepository struct {
	db *gorm.DB
}

// NewPriorityRepository creates a new PriorityRepository
func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &GormPriorityRepository{db: db}
}

// Create creates a new priority
func (r *GormPriorityRepository) Create(priority *models.Priority) error {
	return r.db.Create(priority).Error
}

// FindByID finds a priority by ID
func (r *GormPriorityRepository) FindByID(id uint64) (*models.Priority, error) {
	var priority models.Priority
	if err := r.db.First(&priority, id).Error; err != nil {
		return nil, err
	}
	return &priority, nil
}

// List retrieves all priorities
func (r *GormPriorityRepository) List() ([]models.Priority, error) {
	var priorities []models.Priority
	if err := r.db.Order("priorities.id ASC").Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

// Update updates a priority
func (r *GormPriorityRepository) Update(priority *models.Priority) error {
	return r.db.Save(priority).Error
}

// Delete removes a priority and nulls the priority reference on
// dependent tasks atomically
func (r *GormPriorityRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("priority_id = ?", id).
			Update("priority_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Priority{}, id).Error
	})
}
