package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/versioning"
)

// Bulk timesheet statuses.
const (
	BulkTimesheetDraft    = "draft"
	BulkTimesheetInvoiced = "invoiced"
	BulkTimesheetPaid     = "paid"
)

// BulkTimesheet aggregates a client's hours for a billing period into one
// versioned financial record. Its invoice number is drawn from the same
// namespace as regular invoices.
type BulkTimesheet struct {
	BaseModel
	versioning.Versioned
	InvoiceNumber string          `gorm:"column:invoice_number;size:20;uniqueIndex;not null" json:"invoiceNumber"`
	ClientID      uint            `gorm:"column:client_id;not null;index" json:"clientId"`
	Client        *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	PeriodStart   time.Time       `gorm:"column:period_start;type:date;not null" json:"periodStart"`
	PeriodEnd     time.Time       `gorm:"column:period_end;type:date;not null" json:"periodEnd"`
	TotalHours    decimal.Decimal `gorm:"column:total_hours;type:decimal(8,2)" json:"totalHours"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"totalAmount"`
	Status        string          `gorm:"size:20;not null;default:draft" json:"status"`
}

// BulkTimesheetUpdate carries a partial update; nil fields are untouched.
type BulkTimesheetUpdate struct {
	ClientID    *uint
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	TotalHours  *decimal.Decimal
	TotalAmount *decimal.Decimal
	Status      *string
}

// BulkTimesheetRepository defines the data access interface for bulk timesheets.
type BulkTimesheetRepository interface {
	Create(ctx context.Context, bt *BulkTimesheet) error
	GetByID(ctx context.Context, id uint) (*BulkTimesheet, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[BulkTimesheet], error)
	CommitUpdate(ctx context.Context, id uint, expectedVersion int, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

// BulkTimesheetService defines the business logic interface for bulk timesheets.
type BulkTimesheetService interface {
	CreateBulkTimesheet(ctx context.Context, actor Actor, bt *BulkTimesheet) (*BulkTimesheet, error)
	GetBulkTimesheet(ctx context.Context, actor Actor, id uint) (*BulkTimesheet, error)
	ListBulkTimesheets(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[BulkTimesheet], error)
	UpdateBulkTimesheet(ctx context.Context, actor Actor, id uint, update BulkTimesheetUpdate) (*BulkTimesheet, error)
	DeleteBulkTimesheet(ctx context.Context, actor Actor, id uint) error
}
