package client

import "github.com/staffdesk/staffdesk/internal/domain"

// CreateClientRequest represents the input for creating a client.
type CreateClientRequest struct {
	CompanyName string `json:"companyName" binding:"required,min=2,max=200"`
	ContactName string `json:"contactName" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	Industry    string `json:"industry" binding:"max=100"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest represents the input for updating a client.
type UpdateClientRequest struct {
	CompanyName string `json:"companyName" binding:"required,min=2,max=200"`
	ContactName string `json:"contactName" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	Industry    string `json:"industry" binding:"max=100"`
	Notes       string `json:"notes"`
}

func (r *CreateClientRequest) toDomain() *domain.Client {
	return &domain.Client{
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Industry:    r.Industry,
		Notes:       r.Notes,
	}
}

func (r *UpdateClientRequest) toDomain() *domain.Client {
	return &domain.Client{
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Industry:    r.Industry,
		Notes:       r.Notes,
	}
}
