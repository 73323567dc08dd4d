package auth

import "github.com/staffdesk/staffdesk/internal/domain"

// LoginRequest represents the login input.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the registration input. New accounts always
// start as consultants; role promotion goes through user administration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// TokenResponse is the payload returned on successful login.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      *domain.User `json:"user"`
}
