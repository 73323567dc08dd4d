package bulktimesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/domain"
)

// CreateBulkTimesheetRequest represents the input for creating a bulk
// timesheet. The invoice number is allocated server-side.
type CreateBulkTimesheetRequest struct {
	ClientID    uint            `json:"clientId" binding:"required"`
	PeriodStart time.Time       `json:"periodStart" binding:"required" time_format:"2006-01-02"`
	PeriodEnd   time.Time       `json:"periodEnd" binding:"required" time_format:"2006-01-02"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status" binding:"omitempty,oneof=draft invoiced paid"`
}

// UpdateBulkTimesheetRequest represents a partial update; absent fields
// are untouched.
type UpdateBulkTimesheetRequest struct {
	ClientID    *uint            `json:"clientId"`
	PeriodStart *time.Time       `json:"periodStart" time_format:"2006-01-02"`
	PeriodEnd   *time.Time       `json:"periodEnd" time_format:"2006-01-02"`
	TotalHours  *decimal.Decimal `json:"totalHours"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	Status      *string          `json:"status" binding:"omitempty,oneof=draft invoiced paid"`
}

func (r *CreateBulkTimesheetRequest) toDomain() *domain.BulkTimesheet {
	return &domain.BulkTimesheet{
		ClientID:    r.ClientID,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		TotalHours:  r.TotalHours,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
	}
}

func (r *UpdateBulkTimesheetRequest) toUpdate() domain.BulkTimesheetUpdate {
	return domain.BulkTimesheetUpdate{
		ClientID:    r.ClientID,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		TotalHours:  r.TotalHours,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
	}
}
