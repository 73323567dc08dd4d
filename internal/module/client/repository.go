package client

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// listDefinition declares the client list's filter capabilities. Company
// name is a substring match, industry is exact; both live on the record
// itself, so they push down to storage. Global search is compute-only.
func listDefinition() listquery.Definition[domain.Client] {
	return listquery.Definition[domain.Client]{
		Table: "clients",
		Fields: []listquery.Field[domain.Client]{
			{
				Param:  "nameFilter",
				Column: "clients.company_name",
				Match:  listquery.MatchSubstring,
				Eval: func(c *domain.Client, v string) bool {
					return strings.Contains(strings.ToLower(c.CompanyName), strings.ToLower(v))
				},
			},
			{
				Param:  "industryFilter",
				Column: "clients.industry",
				Match:  listquery.MatchExact,
				Eval: func(c *domain.Client, v string) bool {
					return c.Industry == v
				},
			},
		},
		SearchText: func(c *domain.Client) []string {
			return []string{c.CompanyName, c.ContactName, c.Email, c.Industry, c.Notes}
		},
	}
}

// clientRepository implements domain.ClientRepository using GORM.
type clientRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.Client]
}

// NewClientRepository creates a ClientRepository backed by the given database.
func NewClientRepository(db *gorm.DB) domain.ClientRepository {
	return &clientRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

// Create inserts a new client.
func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a client by its primary key.
func (r *clientRepository) GetByID(ctx context.Context, id uint) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &client, nil
}

// List returns one page of clients under the given query and scope.
func (r *clientRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.Client], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

// Update saves changes to an existing client.
func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a client by ID.
func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Client{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
