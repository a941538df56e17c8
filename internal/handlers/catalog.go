package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/services"
)

// CategoryHandler coordinates category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns all categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryDTOs(categories)})
}

// GetCategory returns a single category.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// CreateCategory stores a new category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// UpdateCategory renames a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type UpdateCategoryRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory removes a category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCategoryNameEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// PriorityHandler coordinates priority HTTP handlers.
type PriorityHandler struct {
	priorityService *services.PriorityService
}

// NewPriorityHandler creates a new PriorityHandler.
func NewPriorityHandler(priorityService *services.PriorityService) *PriorityHandler {
	return &PriorityHandler{
		priorityService: priorityService,
	}
}

// ListPriorities returns all priorities.
func (h *PriorityHandler) ListPriorities(c *gin.Context) {
	priorities, err := h.priorityService.ListPriorities()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"priorities": dto.ToPriorityDTOs(priorities)})
}

// GetPriority returns a single priority.
func (h *PriorityHandler) GetPriority(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	priority, err := h.priorityService.GetPriority(id)
	if err != nil {
		respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriorityDTO(*priority))
}

// CreatePriority stores a new priority.
func (h *PriorityHandler) CreatePriority(c *gin.Context) {
	type CreatePriorityRequest struct {
		Level string `json:"level" binding:"required"`
	}

	var req CreatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	priority, err := h.priorityService.CreatePriority(req.Level)
	if err != nil {
		respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPriorityDTO(*priority))
}

// UpdatePriority renames a priority.
func (h *PriorityHandler) UpdatePriority(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type UpdatePriorityRequest struct {
		Level string `json:"level" binding:"required"`
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	priority, err := h.priorityService.UpdatePriority(id, req.Level)
	if err != nil {
		respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriorityDTO(*priority))
}

// DeletePriority removes a priority.
func (h *PriorityHandler) DeletePriority(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.priorityService.DeletePriority(id); err != nil {
		respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Priority deleted"})
}

func respondPriorityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPriorityNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPriorityLevelEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
