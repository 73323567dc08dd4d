package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/domain"
)

// CreateTimesheetRequest represents the input for creating a timesheet.
type CreateTimesheetRequest struct {
	JobSeekerID uint            `json:"jobSeekerId" binding:"required"`
	PositionID  uint            `json:"positionId" binding:"required"`
	WeekEnding  time.Time       `json:"weekEnding" binding:"required" time_format:"2006-01-02"`
	Hours       decimal.Decimal `json:"hours"`
	Status      string          `json:"status" binding:"omitempty,oneof=draft submitted approved"`
}

// UpdateTimesheetRequest represents the input for updating a timesheet.
type UpdateTimesheetRequest struct {
	JobSeekerID uint            `json:"jobSeekerId" binding:"required"`
	PositionID  uint            `json:"positionId" binding:"required"`
	WeekEnding  time.Time       `json:"weekEnding" binding:"required" time_format:"2006-01-02"`
	Hours       decimal.Decimal `json:"hours"`
	Status      string          `json:"status" binding:"omitempty,oneof=draft submitted approved"`
}

func (r *CreateTimesheetRequest) toDomain() *domain.Timesheet {
	return &domain.Timesheet{
		JobSeekerID: r.JobSeekerID,
		PositionID:  r.PositionID,
		WeekEnding:  r.WeekEnding,
		Hours:       r.Hours,
		Status:      r.Status,
	}
}

func (r *UpdateTimesheetRequest) toDomain() *domain.Timesheet {
	return &domain.Timesheet{
		JobSeekerID: r.JobSeekerID,
		PositionID:  r.PositionID,
		WeekEnding:  r.WeekEnding,
		Hours:       r.Hours,
		Status:      r.Status,
	}
}
