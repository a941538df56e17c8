package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
)

// PaginationParams is the validated paging window of a list request.
type PaginationParams struct {
	Page  int
	Limit int
}

// Offset converts the window into a row offset.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationResponse echoes the applied window alongside the total
// row count.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams reads the page and limit query values, ignoring
// anything missing, unparsable or out of bounds.
func GetPaginationParams(c *gin.Context) PaginationParams {
	params := PaginationParams{Page: 1, Limit: constants.DefaultPageSize}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil &&
		limit >= constants.MinPageSize && limit <= constants.MaxPageSize {
		params.Limit = limit
	}

	return params
}
