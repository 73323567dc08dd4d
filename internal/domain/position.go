package domain

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// Position statuses.
const (
	PositionOpen   = "open"
	PositionFilled = "filled"
	PositionClosed = "closed"
)

// Position represents a job posting for a client.
// ReferenceNumber is allocated from the "positions" namespace ("POS-" prefix).
type Position struct {
	BaseModel
	ReferenceNumber string          `gorm:"column:reference_number;size:20;uniqueIndex;not null" json:"referenceNumber"`
	Title           string          `gorm:"size:200;not null" json:"title"`
	ClientID        uint            `gorm:"column:client_id;not null;index" json:"clientId"`
	Client          *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Description     string          `json:"description"`
	PayRate         decimal.Decimal `gorm:"column:pay_rate;type:decimal(10,2)" json:"payRate"`
	BillRate        decimal.Decimal `gorm:"column:bill_rate;type:decimal(10,2)" json:"billRate"`
	Status          string          `gorm:"size:20;not null;default:open" json:"status"`
	CreatedBy       uint            `gorm:"column:created_by" json:"createdBy"`
}

// PositionRepository defines the data access interface for positions.
type PositionRepository interface {
	Create(ctx context.Context, position *Position) error
	GetByID(ctx context.Context, id uint) (*Position, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[Position], error)
	Update(ctx context.Context, position *Position) error
	Delete(ctx context.Context, id uint) error
	ReferenceNumbers() sequence.Source
}

// PositionService defines the business logic interface for positions.
type PositionService interface {
	CreatePosition(ctx context.Context, actor Actor, position *Position) (*Position, error)
	GetPosition(ctx context.Context, actor Actor, id uint) (*Position, error)
	ListPositions(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[Position], error)
	UpdatePosition(ctx context.Context, actor Actor, id uint, position *Position) (*Position, error)
	DeletePosition(ctx context.Context, actor Actor, id uint) error
}
