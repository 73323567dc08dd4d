package listquery

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Scope is a caller-identity-derived restriction applied before any
// user-supplied filter (e.g. "only records the caller created").
type Scope func(db *gorm.DB) *gorm.DB

// OwnedBy returns a Scope restricting rows to those created by the actor.
func OwnedBy(column string, actorID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", actorID)
	}
}

// Match describes how a filter value is validated and, for pushable
// fields, which SQL predicate it produces.
type Match int

const (
	MatchExact Match = iota
	MatchSubstring
	MatchDateFrom
	MatchDateTo
	MatchNumberFrom
	MatchNumberTo
	MatchBool
)

// DateLayout is the wire format for date-valued filters.
const DateLayout = "2006-01-02"

// Field declares one filter criterion of a resource.
//
// A non-empty Column makes the field storage-pushable; Join may name a
// direct-join clause when the column lives on a related record. Eval is
// the in-memory predicate used on the fallback path, so it must be set
// for every field, pushable or not. A field with an empty Column is
// compute-only and forces the fallback path whenever it is active.
type Field[T any] struct {
	Param  string
	Column string
	Join   string
	Match  Match
	Eval   func(item *T, value string) bool
}

// Definition is the per-resource capability table, built once at startup.
type Definition[T any] struct {
	// Table is the resource's table name, used to qualify the ordering
	// columns when joins are active.
	Table string
	// Fields lists the accepted filter criteria.
	Fields []Field[T]
	// SearchText extracts the values matched by the global search term.
	// Global search is always compute-only. Nil disables search.
	SearchText func(item *T) []string
	// Preload names the relations batch-loaded on the fallback path, one
	// "fetch by id set" round trip per relation.
	Preload []string
}

// Engine executes list queries for one resource type.
type Engine[T any] struct {
	db  *gorm.DB
	def Definition[T]
}

// NewEngine creates an Engine from a resource definition.
func NewEngine[T any](db *gorm.DB, def Definition[T]) *Engine[T] {
	return &Engine[T]{db: db, def: def}
}

// criterion is an active filter: a declared field plus the request value.
type criterion[T any] struct {
	field Field[T]
	value string
}

// List produces one page of the resource under the given query and scope.
//
// Malformed filter values (a non-date in a date-range field, a non-boolean
// in a boolean field) are dropped rather than failing the request.
func (e *Engine[T]) List(ctx context.Context, q Query, scope Scope) (*Page[T], error) {
	q.normalize()

	crits := e.activeCriteria(q)
	searchActive := q.Search != "" && e.def.SearchText != nil

	var totalUnfiltered int64
	if err := e.scoped(ctx, scope).Count(&totalUnfiltered).Error; err != nil {
		return nil, err
	}

	if !searchActive && allPushable(crits) {
		return e.listPushed(ctx, q, scope, crits, totalUnfiltered)
	}
	return e.listInMemory(ctx, q, scope, crits, totalUnfiltered)
}

// listPushed filters, counts, and windows entirely in the storage layer.
func (e *Engine[T]) listPushed(ctx context.Context, q Query, scope Scope, crits []criterion[T], totalUnfiltered int64) (*Page[T], error) {
	filtered := e.pushCriteria(e.scoped(ctx, scope), crits)

	var totalFiltered int64
	if err := filtered.Count(&totalFiltered).Error; err != nil {
		return nil, err
	}

	items := []T{}
	err := e.pushCriteria(e.scoped(ctx, scope), crits).
		Order(e.orderClause()).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page[T]{Items: items, Pagination: newMeta(q, totalUnfiltered, totalFiltered)}, nil
}

// listInMemory fetches the entire scoped set once, resolves relations in
// batch, applies every active criterion against the denormalized items,
// and slices the page window with the same arithmetic as the pushed path.
func (e *Engine[T]) listInMemory(ctx context.Context, q Query, scope Scope, crits []criterion[T], totalUnfiltered int64) (*Page[T], error) {
	db := e.scoped(ctx, scope)
	for _, rel := range e.def.Preload {
		db = db.Preload(rel)
	}

	var all []T
	if err := db.Order(e.orderClause()).Find(&all).Error; err != nil {
		return nil, err
	}

	filtered := make([]T, 0, len(all))
	for i := range all {
		if e.matches(&all[i], crits, q.Search) {
			filtered = append(filtered, all[i])
		}
	}

	totalFiltered := int64(len(filtered))
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := filtered[start:end]
	return &Page[T]{Items: items, Pagination: newMeta(q, totalUnfiltered, totalFiltered)}, nil
}

// matches applies all active criteria and the search term to one item.
func (e *Engine[T]) matches(item *T, crits []criterion[T], search string) bool {
	for _, c := range crits {
		if c.field.Eval == nil || !c.field.Eval(item, c.value) {
			return false
		}
	}
	if search != "" && e.def.SearchText != nil {
		needle := strings.ToLower(search)
		found := false
		for _, hay := range e.def.SearchText(item) {
			if strings.Contains(strings.ToLower(hay), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// activeCriteria resolves the request's filter values against the
// definition, dropping unknown parameters and malformed values.
func (e *Engine[T]) activeCriteria(q Query) []criterion[T] {
	var crits []criterion[T]
	for _, f := range e.def.Fields {
		value, ok := q.Filters[f.Param]
		if !ok || value == "" {
			continue
		}
		if !validValue(f.Match, value) {
			continue
		}
		crits = append(crits, criterion[T]{field: f, value: value})
	}
	return crits
}

// pushCriteria translates pushable criteria into SQL predicates.
func (e *Engine[T]) pushCriteria(db *gorm.DB, crits []criterion[T]) *gorm.DB {
	joined := map[string]bool{}
	for _, c := range crits {
		if c.field.Join != "" && !joined[c.field.Join] {
			db = db.Joins(c.field.Join)
			joined[c.field.Join] = true
		}
		col := c.field.Column
		switch c.field.Match {
		case MatchSubstring:
			db = db.Where(col+" LIKE ?", "%"+c.value+"%")
		case MatchDateFrom:
			t, _ := time.Parse(DateLayout, c.value)
			db = db.Where(col+" >= ?", t)
		case MatchDateTo:
			t, _ := time.Parse(DateLayout, c.value)
			db = db.Where(col+" <= ?", t)
		case MatchNumberFrom:
			n, _ := strconv.ParseFloat(c.value, 64)
			db = db.Where(col+" >= ?", n)
		case MatchNumberTo:
			n, _ := strconv.ParseFloat(c.value, 64)
			db = db.Where(col+" <= ?", n)
		case MatchBool:
			b, _ := strconv.ParseBool(c.value)
			db = db.Where(col+" = ?", b)
		default:
			db = db.Where(col+" = ?", c.value)
		}
	}
	return db
}

// scoped starts a fresh query builder with the caller's scope applied.
func (e *Engine[T]) scoped(ctx context.Context, scope Scope) *gorm.DB {
	db := e.db.WithContext(ctx).Model(new(T))
	if scope != nil {
		db = db.Scopes(scope)
	}
	return db
}

// orderClause orders newest-created-first with a stable id tie-break.
// Columns are table-qualified so joins cannot make them ambiguous.
func (e *Engine[T]) orderClause() string {
	return e.def.Table + ".created_at DESC, " + e.def.Table + ".id DESC"
}

// allPushable reports whether every active criterion can run in storage.
func allPushable[T any](crits []criterion[T]) bool {
	for _, c := range crits {
		if c.field.Column == "" {
			return false
		}
	}
	return true
}

// validValue checks that the raw value parses for the match kind.
// Values that fail to parse are treated as absent.
func validValue(m Match, value string) bool {
	switch m {
	case MatchDateFrom, MatchDateTo:
		_, err := time.Parse(DateLayout, value)
		return err == nil
	case MatchNumberFrom, MatchNumberTo:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case MatchBool:
		return value == "true" || value == "false"
	default:
		return true
	}
}
