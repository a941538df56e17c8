package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPriorityNotFound   = errors.New("priority not found")
	ErrPriorityLevelEmpty = errors.New("priority level is required")
)

// PriorityService handles priority business logic.
type PriorityService struct {
	priorityRepo repository.PriorityRepository
}

// NewPriorityService creates a new PriorityService.
func NewPriorityService(priorityRepo repository.PriorityRepository) *PriorityService {
	return &PriorityService{priorityRepo: priorityRepo}
}

// CreatePriority stores a new priority level.
func (s *PriorityService) CreatePriority(level string) (*models.Priority, error) {
	if strings.TrimSpace(level) == "" {
		return nil, ErrPriorityLevelEmpty
	}

	priority := &models.Priority{Level: level}
	if err := s.priorityRepo.Create(priority); err != nil {
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}

	return priority, nil
}

// UpdatePriority renames an existing priority level.
func (s *PriorityService) UpdatePriority(id uint64, level string) (*models.Priority, error) {
	priority, err := s.priorityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriorityNotFound
		}
		return nil, fmt.Errorf("failed to find priority: %w", err)
	}

	if strings.TrimSpace(level) == "" {
		return nil, ErrPriorityLevelEmpty
	}

	priority.Level = level
	if err := s.priorityRepo.Update(priority); err != nil {
		return nil, fmt.Errorf("failed to update priority: %w", err)
	}

	return priority, nil
}

// DeletePriority removes a priority; dependent tasks keep existing
// with the priority reference cleared.
func (s *PriorityService) DeletePriority(id uint64) error {
	if _, err := s.priorityRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPriorityNotFound
		}
		return fmt.Errorf("failed to find priority: %w", err)
	}

	if err := s.priorityRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete priority: %w", err)
	}

	return nil
}

// ListPriorities returns all priorities.
func (s *PriorityService) ListPriorities() ([]models.Priority, error) {
	priorities, err := s.priorityRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	return priorities, nil
}

// GetPriority retrieves a priority by ID.
func (s *PriorityService) GetPriority(id uint64) (*models.Priority, error) {
	priority, err := s.priorityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriorityNotFound
		}
		return nil, fmt.Errorf("failed to find priority: %w", err)
	}
	return priority, nil
}
