package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/listquery"
)

// Timesheet statuses.
const (
	TimesheetDraft     = "draft"
	TimesheetSubmitted = "submitted"
	TimesheetApproved  = "approved"
)

// Timesheet records one job seeker's hours against a position for a week.
type Timesheet struct {
	BaseModel
	JobSeekerID uint            `gorm:"column:job_seeker_id;not null;index" json:"jobSeekerId"`
	JobSeeker   *JobSeeker      `gorm:"foreignKey:JobSeekerID" json:"jobSeeker,omitempty"`
	PositionID  uint            `gorm:"column:position_id;not null;index" json:"positionId"`
	Position    *Position       `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	WeekEnding  time.Time       `gorm:"column:week_ending;type:date;not null" json:"weekEnding"`
	Hours       decimal.Decimal `gorm:"type:decimal(6,2)" json:"hours"`
	Status      string          `gorm:"size:20;not null;default:draft" json:"status"`
	CreatedBy   uint            `gorm:"column:created_by" json:"createdBy"`
}

// TimesheetRepository defines the data access interface for timesheets.
type TimesheetRepository interface {
	Create(ctx context.Context, ts *Timesheet) error
	GetByID(ctx context.Context, id uint) (*Timesheet, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[Timesheet], error)
	Update(ctx context.Context, ts *Timesheet) error
	Delete(ctx context.Context, id uint) error
}

// TimesheetService defines the business logic interface for timesheets.
type TimesheetService interface {
	CreateTimesheet(ctx context.Context, actor Actor, ts *Timesheet) (*Timesheet, error)
	GetTimesheet(ctx context.Context, actor Actor, id uint) (*Timesheet, error)
	ListTimesheets(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[Timesheet], error)
	UpdateTimesheet(ctx context.Context, actor Actor, id uint, ts *Timesheet) (*Timesheet, error)
	DeleteTimesheet(ctx context.Context, actor Actor, id uint) error
}
