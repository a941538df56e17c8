package dto

import "github.com/taskboard/taskboard-api/internal/models"

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PriorityDTO represents a priority in API responses
type PriorityDTO struct {
	ID    uint64 `json:"id"`
	Level string `json:"level"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category)
	}
	return dtos
}

// ToPriorityDTO converts a Priority model to PriorityDTO
func ToPriorityDTO(priority models.Priority) PriorityDTO {
	return PriorityDTO{
		ID:    priority.ID,
		Level: priority.Level,
	}
}

// ToPriorityDTOs converts a slice of priorities
func ToPriorityDTOs(priorities []models.Priority) []PriorityDTO {
	dtos := make([]PriorityDTO, len(priorities))
	for i, priority := range priorities {
		dtos[i] = ToPriorityDTO(priority)
	}
	return dtos
}
