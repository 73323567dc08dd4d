package domain

import (
	"context"

	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// Roles recognized by the service. Admins see and mutate every record;
// consultants are scoped to records they created.
const (
	RoleAdmin      = "admin"
	RoleConsultant = "consultant"
)

// User represents a back-office staff member.
type User struct {
	BaseModel
	StaffNumber  string `gorm:"column:staff_number;size:20;uniqueIndex;not null" json:"staffNumber"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role         string `gorm:"size:20;not null;default:consultant" json:"role"`
	PasswordHash string `gorm:"size:255" json:"-"`
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[User], error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	StaffNumbers() sequence.Source
}

// UserService defines the business logic interface for users.
type UserService interface {
	GetUser(ctx context.Context, actor Actor, id uint) (*User, error)
	ListUsers(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[User], error)
	UpdateUser(ctx context.Context, actor Actor, id uint, name, email, role string) (*User, error)
	DeleteUser(ctx context.Context, actor Actor, id uint) error
}

// Actor identifies the authenticated caller of a core operation.
// It is derived from the JWT claims by the auth middleware.
type Actor struct {
	ID   uint
	Role string
}

// Admin reports whether the actor holds the admin role.
func (a Actor) Admin() bool {
	return a.Role == RoleAdmin
}
