// Package query turns raw URL query parameters into the normalized
// pagination tuple and filter criteria shared by every resource endpoint.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"abarto-backend/internal/domain"
)

type Pagination struct {
	Page      int
	Limit     int
	Offset    int
	SortField string // schema field name, already validated
	SortOrder string // "ASC" or "DESC"
}

// SortColumn resolves the sort field to its table column.
func (p Pagination) SortColumn(res domain.Resource) string {
	if col, ok := res.ColumnFor(p.SortField); ok {
		return col
	}
	if col, ok := res.ColumnFor(res.DefaultSort); ok {
		return col
	}
	return "id"
}

// ResolvePagination never fails: malformed numbers degrade to defaults,
// oversized limits are clamped to the resource ceiling, unknown sort fields
// fall back to the resource default.
func ResolvePagination(values url.Values, res domain.Resource) Pagination {
	page := parsePositiveInt(values.Get("page"), 1)
	limit := parsePositiveInt(values.Get("limit"), domain.DefaultLimit)
	if ceiling := res.LimitCeiling(); limit > ceiling {
		limit = ceiling
	}

	sortField := strings.TrimSpace(values.Get("sort"))
	if _, ok := res.ColumnFor(sortField); !ok {
		sortField = res.DefaultSort
	}

	// exact match only: "DESC", "Desc" etc. resolve to ascending
	order := "ASC"
	switch values.Get("order") {
	case "desc":
		order = "DESC"
	case "":
		if res.DefaultOrder == "desc" {
			order = "DESC"
		}
	}

	return Pagination{
		Page:      page,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		SortField: sortField,
		SortOrder: order,
	}
}

func parsePositiveInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
