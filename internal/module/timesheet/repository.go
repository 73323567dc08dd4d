package timesheet

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// listDefinition declares the timesheet list's filter capabilities. All
// named filters live on the record and push down. Global search spans the
// job seeker's name and the position title, two separate relations, so it
// is compute-only.
func listDefinition() listquery.Definition[domain.Timesheet] {
	return listquery.Definition[domain.Timesheet]{
		Table: "timesheets",
		Fields: []listquery.Field[domain.Timesheet]{
			{
				Param:  "jobSeekerFilter",
				Column: "timesheets.job_seeker_id",
				Match:  listquery.MatchExact,
				Eval: func(ts *domain.Timesheet, v string) bool {
					return strconv.FormatUint(uint64(ts.JobSeekerID), 10) == v
				},
			},
			{
				Param:  "positionFilter",
				Column: "timesheets.position_id",
				Match:  listquery.MatchExact,
				Eval: func(ts *domain.Timesheet, v string) bool {
					return strconv.FormatUint(uint64(ts.PositionID), 10) == v
				},
			},
			{
				Param:  "statusFilter",
				Column: "timesheets.status",
				Match:  listquery.MatchExact,
				Eval: func(ts *domain.Timesheet, v string) bool {
					return ts.Status == v
				},
			},
			{
				Param:  "dateRangeStart",
				Column: "timesheets.week_ending",
				Match:  listquery.MatchDateFrom,
				Eval: func(ts *domain.Timesheet, v string) bool {
					from, _ := time.Parse(listquery.DateLayout, v)
					return !ts.WeekEnding.Before(from)
				},
			},
			{
				Param:  "dateRangeEnd",
				Column: "timesheets.week_ending",
				Match:  listquery.MatchDateTo,
				Eval: func(ts *domain.Timesheet, v string) bool {
					to, _ := time.Parse(listquery.DateLayout, v)
					return !ts.WeekEnding.After(to)
				},
			},
		},
		SearchText: func(ts *domain.Timesheet) []string {
			var out []string
			if ts.JobSeeker != nil {
				out = append(out, ts.JobSeeker.FirstName, ts.JobSeeker.LastName)
			}
			if ts.Position != nil {
				out = append(out, ts.Position.Title, ts.Position.ReferenceNumber)
			}
			return out
		},
		Preload: []string{"JobSeeker", "Position"},
	}
}

// timesheetRepository implements domain.TimesheetRepository using GORM.
type timesheetRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.Timesheet]
}

// NewTimesheetRepository creates a TimesheetRepository backed by the given database.
func NewTimesheetRepository(db *gorm.DB) domain.TimesheetRepository {
	return &timesheetRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

func (r *timesheetRepository) Create(ctx context.Context, ts *domain.Timesheet) error {
	if err := r.db.WithContext(ctx).Create(ts).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id uint) (*domain.Timesheet, error) {
	var ts domain.Timesheet
	err := r.db.WithContext(ctx).
		Preload("JobSeeker").
		Preload("Position").
		First(&ts, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &ts, nil
}

func (r *timesheetRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.Timesheet], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

func (r *timesheetRepository) Update(ctx context.Context, ts *domain.Timesheet) error {
	if err := r.db.WithContext(ctx).Save(ts).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *timesheetRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Timesheet{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
