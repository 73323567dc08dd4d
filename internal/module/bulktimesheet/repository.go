package bulktimesheet

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// listDefinition declares the bulk timesheet list's filter capabilities.
// Period filtering applies to the period end date. Global search reaches
// the related client's name, so it is compute-only.
func listDefinition() listquery.Definition[domain.BulkTimesheet] {
	return listquery.Definition[domain.BulkTimesheet]{
		Table: "bulk_timesheets",
		Fields: []listquery.Field[domain.BulkTimesheet]{
			{
				Param:  "clientFilter",
				Column: "bulk_timesheets.client_id",
				Match:  listquery.MatchExact,
				Eval: func(bt *domain.BulkTimesheet, v string) bool {
					return strconv.FormatUint(uint64(bt.ClientID), 10) == v
				},
			},
			{
				Param:  "statusFilter",
				Column: "bulk_timesheets.status",
				Match:  listquery.MatchExact,
				Eval: func(bt *domain.BulkTimesheet, v string) bool {
					return bt.Status == v
				},
			},
			{
				Param:  "dateRangeStart",
				Column: "bulk_timesheets.period_end",
				Match:  listquery.MatchDateFrom,
				Eval: func(bt *domain.BulkTimesheet, v string) bool {
					from, _ := time.Parse(listquery.DateLayout, v)
					return !bt.PeriodEnd.Before(from)
				},
			},
			{
				Param:  "dateRangeEnd",
				Column: "bulk_timesheets.period_end",
				Match:  listquery.MatchDateTo,
				Eval: func(bt *domain.BulkTimesheet, v string) bool {
					to, _ := time.Parse(listquery.DateLayout, v)
					return !bt.PeriodEnd.After(to)
				},
			},
		},
		SearchText: func(bt *domain.BulkTimesheet) []string {
			out := []string{bt.InvoiceNumber, bt.Status}
			if bt.Client != nil {
				out = append(out, bt.Client.CompanyName)
			}
			return out
		},
		Preload: []string{"Client"},
	}
}

// bulkTimesheetRepository implements domain.BulkTimesheetRepository using GORM.
type bulkTimesheetRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.BulkTimesheet]
}

// NewBulkTimesheetRepository creates a BulkTimesheetRepository backed by the given database.
func NewBulkTimesheetRepository(db *gorm.DB) domain.BulkTimesheetRepository {
	return &bulkTimesheetRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

func (r *bulkTimesheetRepository) Create(ctx context.Context, bt *domain.BulkTimesheet) error {
	if err := r.db.WithContext(ctx).Create(bt).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *bulkTimesheetRepository) GetByID(ctx context.Context, id uint) (*domain.BulkTimesheet, error) {
	var bt domain.BulkTimesheet
	if err := r.db.WithContext(ctx).Preload("Client").First(&bt, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &bt, nil
}

func (r *bulkTimesheetRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.BulkTimesheet], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

// CommitUpdate writes fields guarded by the expected version. Zero rows
// affected means either the record vanished or a concurrent writer bumped
// the version first; the two are distinguished by a follow-up existence
// check so the caller sees NotFound or Conflict accordingly.
func (r *bulkTimesheetRepository) CommitUpdate(ctx context.Context, id uint, expectedVersion int, fields map[string]any) error {
	return pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.
			Model(&domain.BulkTimesheet{}).
			Where("id = ? AND version = ?", id, expectedVersion).
			Updates(fields)
		if result.Error != nil {
			return pkg.MapDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.BulkTimesheet{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return pkg.MapDBError(err)
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.NewAppError(domain.CodeConflict, "version conflict", nil)
		}
		return nil
	})
}

func (r *bulkTimesheetRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.BulkTimesheet{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
