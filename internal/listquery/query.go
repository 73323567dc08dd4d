// Package listquery implements the shared filtered-pagination engine used
// by every list endpoint.
//
// Each resource declares, once at startup, a Definition: the set of filter
// fields it accepts and, per field, whether the predicate is pushable to
// the storage layer (a column on the record itself, or on a single related
// record reachable by a direct join) or compute-only (it spans several
// joined collections, or is the heterogeneous free-text search). When every
// active criterion is pushable the engine filters and windows in SQL;
// otherwise it fetches the entire scoped set once, batch-loads related
// records, and filters and windows in memory. Both paths produce identical
// pagination metadata and ordering.
package listquery

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// reservedParams lists query parameter names used for paging and search,
// not for named filters.
var reservedParams = map[string]bool{
	"page":       true,
	"limit":      true,
	"search":     true,
	"searchTerm": true,
}

// Query is a caller-supplied list request. It is constructed per request
// and discarded after producing a Page.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

// FromContext extracts paging, search, and filter parameters from the
// request query string. Both "search" and "searchTerm" are accepted for
// the global search term.
func FromContext(c *gin.Context) Query {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))

	search := c.Query("search")
	if search == "" {
		search = c.Query("searchTerm")
	}

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filters[key] = values[0]
		}
	}

	q := Query{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Filters:  filters,
	}
	q.normalize()
	return q
}

// normalize clamps page and pageSize so both are always ≥ 1 before use.
func (q *Query) normalize() {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// Meta is the pagination metadata attached to every list response.
type Meta struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalUnfiltered int64 `json:"totalUnfiltered"`
	TotalFiltered   int64 `json:"totalFiltered"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPrevPage     bool  `json:"hasPrevPage"`
}

// Page holds one window of items plus pagination metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Pagination Meta `json:"pagination"`
}

// newMeta computes the derived pagination fields.
func newMeta(q Query, totalUnfiltered, totalFiltered int64) Meta {
	totalPages := int((totalFiltered + int64(q.PageSize) - 1) / int64(q.PageSize))
	return Meta{
		Page:            q.Page,
		PageSize:        q.PageSize,
		TotalUnfiltered: totalUnfiltered,
		TotalFiltered:   totalFiltered,
		TotalPages:      totalPages,
		HasNextPage:     q.Page < totalPages,
		HasPrevPage:     q.Page > 1,
	}
}
