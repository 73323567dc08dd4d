package domain

import (
	"context"

	"github.com/staffdesk/staffdesk/internal/listquery"
)

// Client represents a company the agency places candidates with.
type Client struct {
	BaseModel
	CompanyName string `gorm:"column:company_name;size:200;uniqueIndex;not null" json:"companyName"`
	ContactName string `gorm:"column:contact_name;size:100" json:"contactName"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:50" json:"phone"`
	Address     string `gorm:"size:500" json:"address"`
	Industry    string `gorm:"size:100" json:"industry"`
	Notes       string `json:"notes"`
	CreatedBy   uint   `gorm:"column:created_by" json:"createdBy"`
}

// ClientRepository defines the data access interface for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[Client], error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uint) error
}

// ClientService defines the business logic interface for clients.
type ClientService interface {
	CreateClient(ctx context.Context, actor Actor, client *Client) (*Client, error)
	GetClient(ctx context.Context, actor Actor, id uint) (*Client, error)
	ListClients(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[Client], error)
	UpdateClient(ctx context.Context, actor Actor, id uint, client *Client) (*Client, error)
	DeleteClient(ctx context.Context, actor Actor, id uint) error
}
