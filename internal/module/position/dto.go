package position

import (
	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/domain"
)

// CreatePositionRequest represents the input for creating a position.
// The reference number is allocated server-side and cannot be supplied.
type CreatePositionRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=200"`
	ClientID    uint            `json:"clientId" binding:"required"`
	Description string          `json:"description"`
	PayRate     decimal.Decimal `json:"payRate"`
	BillRate    decimal.Decimal `json:"billRate"`
	Status      string          `json:"status" binding:"omitempty,oneof=open filled closed"`
}

// UpdatePositionRequest represents the input for updating a position.
type UpdatePositionRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=200"`
	ClientID    uint            `json:"clientId" binding:"required"`
	Description string          `json:"description"`
	PayRate     decimal.Decimal `json:"payRate"`
	BillRate    decimal.Decimal `json:"billRate"`
	Status      string          `json:"status" binding:"omitempty,oneof=open filled closed"`
}

func (r *CreatePositionRequest) toDomain() *domain.Position {
	return &domain.Position{
		Title:       r.Title,
		ClientID:    r.ClientID,
		Description: r.Description,
		PayRate:     r.PayRate,
		BillRate:    r.BillRate,
		Status:      r.Status,
	}
}

func (r *UpdatePositionRequest) toDomain() *domain.Position {
	return &domain.Position{
		Title:       r.Title,
		ClientID:    r.ClientID,
		Description: r.Description,
		PayRate:     r.PayRate,
		BillRate:    r.BillRate,
		Status:      r.Status,
	}
}
