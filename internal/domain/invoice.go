package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/sequence"
	"github.com/staffdesk/staffdesk/internal/versioning"
)

// Invoice statuses.
const (
	InvoiceDraft = "draft"
	InvoiceSent  = "sent"
	InvoicePaid  = "paid"
)

// InvoiceNumberPrefix is the textual prefix some invoice identifiers carry.
// The numeric value is what must stay unique within the namespace.
const InvoiceNumberPrefix = "INV-"

// Invoice is a versioned financial record. Its number is drawn from the
// "invoices" namespace, which spans both invoices and bulk timesheets.
// DocumentPath is an opaque document-storage path string.
type Invoice struct {
	BaseModel
	versioning.Versioned
	InvoiceNumber string          `gorm:"column:invoice_number;size:20;uniqueIndex;not null" json:"invoiceNumber"`
	ClientID      uint            `gorm:"column:client_id;not null;index" json:"clientId"`
	Client        *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	IssueDate     time.Time       `gorm:"column:issue_date;type:date;not null" json:"issueDate"`
	DueDate       time.Time       `gorm:"column:due_date;type:date;not null" json:"dueDate"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"column:tax_amount;type:decimal(12,2)" json:"taxAmount"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:decimal(12,2)" json:"grandTotal"`
	Status        string          `gorm:"size:20;not null;default:draft" json:"status"`
	DocumentPath  string          `gorm:"column:document_path;size:500" json:"documentPath"`
	EmailSent     bool            `gorm:"column:email_sent;not null;default:false" json:"emailSent"`
	EmailSentAt   *time.Time      `gorm:"column:email_sent_at" json:"emailSentAt"`
}

// InvoiceUpdate carries a partial update; nil fields are untouched.
type InvoiceUpdate struct {
	ClientID   *uint
	IssueDate  *time.Time
	DueDate    *time.Time
	Subtotal   *decimal.Decimal
	TaxAmount  *decimal.Decimal
	GrandTotal *decimal.Decimal
	Status     *string
}

// InvoiceRepository defines the data access interface for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[Invoice], error)
	// CommitUpdate writes fields conditional on the entity's current
	// version; zero rows affected surfaces as a Conflict.
	CommitUpdate(ctx context.Context, id uint, expectedVersion int, fields map[string]any) error
	// UpdateFields writes version-exempt fields without touching version state.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	// Numbers exposes the "invoices" sequence namespace: every invoice
	// number in use across invoices and bulk timesheets.
	Numbers() sequence.Source
}

// InvoiceService defines the business logic interface for invoices.
type InvoiceService interface {
	NextNumber(ctx context.Context) (string, error)
	CreateInvoice(ctx context.Context, actor Actor, inv *Invoice) (*Invoice, error)
	GetInvoice(ctx context.Context, actor Actor, id uint) (*Invoice, error)
	ListInvoices(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[Invoice], error)
	UpdateInvoice(ctx context.Context, actor Actor, id uint, update InvoiceUpdate) (*Invoice, error)
	DeleteInvoice(ctx context.Context, actor Actor, id uint) error
	// AttachDocument records a freshly generated document path (version-significant).
	AttachDocument(ctx context.Context, actor Actor, id uint) (*Invoice, error)
	// SendInvoice dispatches the invoice email and marks it sent (version-exempt).
	SendInvoice(ctx context.Context, actor Actor, id uint) (*Invoice, error)
}

// Mailer dispatches outbound invoice email. It runs before the email-sent
// flags are written, so a dispatch failure leaves the invoice untouched.
type Mailer interface {
	SendInvoice(ctx context.Context, inv *Invoice, recipient string) error
}
