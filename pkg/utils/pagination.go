package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

const MaxPageSize = 100

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts page and limit from the query string,
// falling back to page 1 and defaultLimit.
func GetPaginationParams(c echo.Context, defaultLimit int) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))
	return NewPaginationParams(page, pageSize, defaultLimit)
}

func NewPaginationParams(page, pageSize, defaultLimit int) PaginationParams {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = defaultLimit
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	// Keep the offset representable for absurd page numbers.
	if pageSize > 0 && page-1 > math.MaxInt/pageSize {
		page = math.MaxInt/pageSize + 1
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}

// GetLimit reads a bare ?limit= used by the short top lists.
func GetLimit(c echo.Context, defaultLimit int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
