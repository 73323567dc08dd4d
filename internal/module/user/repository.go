package user

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// listDefinition declares the user list's filter capabilities.
func listDefinition() listquery.Definition[domain.User] {
	return listquery.Definition[domain.User]{
		Table: "users",
		Fields: []listquery.Field[domain.User]{
			{
				Param:  "roleFilter",
				Column: "users.role",
				Match:  listquery.MatchExact,
				Eval: func(u *domain.User, v string) bool {
					return u.Role == v
				},
			},
			{
				Param:  "nameFilter",
				Column: "users.name",
				Match:  listquery.MatchSubstring,
				Eval: func(u *domain.User, v string) bool {
					return strings.Contains(strings.ToLower(u.Name), strings.ToLower(v))
				},
			},
		},
		SearchText: func(u *domain.User) []string {
			return []string{u.StaffNumber, u.Name, u.Email}
		},
	}
}

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.User]
}

// NewUserRepository creates a UserRepository backed by the given database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.User], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StaffNumbers exposes the "staff" namespace for number allocation.
func (r *userRepository) StaffNumbers() sequence.Source {
	return sequence.NewGormSource(r.db, sequence.TableColumn{Table: "users", Column: "staff_number"})
}
