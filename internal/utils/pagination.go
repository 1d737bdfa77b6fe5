package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Page is the envelope for paginated list responses
type Page[T any] struct {
	PagesCount int   `json:"pagesCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

// NewPage builds a Page from a result slice and the total row count
func NewPage[T any](items []T, total int64, query PageQuery) Page[T] {
	pagesCount := int(total) / query.PageSize
	if int(total)%query.PageSize != 0 {
		pagesCount++
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		PagesCount: pagesCount,
		Page:       query.PageNumber,
		PageSize:   query.PageSize,
		TotalCount: total,
		Items:      items,
	}
}

// PageQuery carries the common list-endpoint query parameters
type PageQuery struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

// Offset returns the row offset for the requested page
func (q PageQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// OrderClause returns a safe ORDER BY expression. The columns map translates
// client-facing sort fields to column names; unknown fields fall back to the
// default column. Only mapped column names ever reach the query.
func (q PageQuery) OrderClause(columns map[string]string, defaultColumn string) string {
	column, ok := columns[q.SortBy]
	if !ok {
		column = defaultColumn
	}
	dir := "DESC"
	if strings.EqualFold(q.SortDirection, "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

// ParsePageQuery reads pagination parameters from the request with defaults
func ParsePageQuery(c *fiber.Ctx) PageQuery {
	q := PageQuery{
		PageNumber:    c.QueryInt("pageNumber", 1),
		PageSize:      c.QueryInt("pageSize", 10),
		SortBy:        c.Query("sortBy", "createdAt"),
		SortDirection: c.Query("sortDirection", "desc"),
	}
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}
	return q
}
