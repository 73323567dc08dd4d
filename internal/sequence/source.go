package sequence

import (
	"context"

	"gorm.io/gorm"
)

// TableColumn names one table column contributing identifiers to a namespace.
type TableColumn struct {
	Table  string
	Column string
}

// gormSource reads a namespace from one or more table columns. It is the
// single authoritative query for the namespace: callers never union tables
// ad hoc.
type gormSource struct {
	db   *gorm.DB
	cols []TableColumn
}

// NewGormSource creates a Source backed by the given table columns.
func NewGormSource(db *gorm.DB, cols ...TableColumn) Source {
	return &gormSource{db: db, cols: cols}
}

// Identifiers returns every non-empty identifier across the namespace's tables.
func (s *gormSource) Identifiers(ctx context.Context) ([]string, error) {
	var all []string
	for _, tc := range s.cols {
		var ids []string
		err := s.db.WithContext(ctx).
			Table(tc.Table).
			Where(tc.Column+" <> ''").
			Pluck(tc.Column, &ids).Error
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
	}
	return all, nil
}

// Exists reports whether any of the given identifiers is present in any
// of the namespace's tables.
func (s *gormSource) Exists(ctx context.Context, ids ...string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	for _, tc := range s.cols {
		var count int64
		err := s.db.WithContext(ctx).
			Table(tc.Table).
			Where(tc.Column+" IN ?", ids).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
