package user

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
)

// userService implements domain.UserService. User administration is an
// admin-only concern; the only non-admin operation is reading one's own
// record.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// GetUser retrieves a user. Admins read anyone; consultants only themselves.
func (s *userService) GetUser(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error) {
	if !actor.Admin() && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns one page of users. Admin only.
func (s *userService) ListUsers(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.User], error) {
	if !actor.Admin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, q, nil)
}

// UpdateUser changes a user's name, email, and role. Admin only; the staff
// number is immutable once allocated.
func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, id uint, name, email, role string) (*domain.User, error) {
	if !actor.Admin() {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateNameEmail(name, email); err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && role != domain.RoleConsultant {
		return nil, domain.NewAppError(domain.CodeValidation, "invalid role", nil)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. Admin only; self-deletion is rejected so the
// system cannot lose its last administrator by accident.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.Admin() {
		return domain.ErrForbidden
	}
	if actor.ID == id {
		return domain.NewAppError(domain.CodeValidation, "cannot delete own account", nil)
	}
	return s.repo.Delete(ctx, id)
}

// validateNameEmail checks name length and email syntax.
func validateNameEmail(name, email string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if nameLen > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must not exceed 100 characters", nil)
	}
	if email == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	return nil
}
