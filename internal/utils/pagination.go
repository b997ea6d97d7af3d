package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds list paging parameters and totals. The JSON field names
// match the platform's API contract.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	PerPage      int   `json:"per_page"`
}

// Offset returns the row offset for the current page.
func (p *Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

// SetTotal records the total row count and derives the page count.
func (p *Pagination) SetTotal(total int64) {
	p.TotalRecords = total
	p.TotalPages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// GetPagination extracts page and limit from the query parameters, using
// defaults when the values are missing or malformed.
func GetPagination(c *fiber.Ctx, defaultPage, defaultLimit int) Pagination {
	page, err := strconv.Atoi(c.Query("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	return Pagination{CurrentPage: page, PerPage: limit}
}
