package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/domain"
)

// CreateInvoiceRequest represents the input for creating an invoice.
// InvoiceNumber is optional: a value previewed via the next-number endpoint
// may be passed back; when absent, a number is allocated at create time.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"omitempty,max=20"`
	ClientID      uint            `json:"clientId" binding:"required"`
	IssueDate     time.Time       `json:"issueDate" binding:"required" time_format:"2006-01-02"`
	DueDate       time.Time       `json:"dueDate" binding:"required" time_format:"2006-01-02"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Status        string          `json:"status" binding:"omitempty,oneof=draft sent paid"`
}

// UpdateInvoiceRequest represents a partial update; absent fields are untouched.
type UpdateInvoiceRequest struct {
	ClientID   *uint            `json:"clientId"`
	IssueDate  *time.Time       `json:"issueDate" time_format:"2006-01-02"`
	DueDate    *time.Time       `json:"dueDate" time_format:"2006-01-02"`
	Subtotal   *decimal.Decimal `json:"subtotal"`
	TaxAmount  *decimal.Decimal `json:"taxAmount"`
	GrandTotal *decimal.Decimal `json:"grandTotal"`
	Status     *string          `json:"status" binding:"omitempty,oneof=draft sent paid"`
}

func (r *CreateInvoiceRequest) toDomain() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: r.InvoiceNumber,
		ClientID:      r.ClientID,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		Subtotal:      r.Subtotal,
		TaxAmount:     r.TaxAmount,
		GrandTotal:    r.GrandTotal,
		Status:        r.Status,
	}
}

func (r *UpdateInvoiceRequest) toUpdate() domain.InvoiceUpdate {
	return domain.InvoiceUpdate{
		ClientID:   r.ClientID,
		IssueDate:  r.IssueDate,
		DueDate:    r.DueDate,
		Subtotal:   r.Subtotal,
		TaxAmount:  r.TaxAmount,
		GrandTotal: r.GrandTotal,
		Status:     r.Status,
	}
}
