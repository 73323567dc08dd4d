package position

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// listDefinition declares the position list's filter capabilities. The
// client name lives on the related client record but is reachable by one
// direct join, so it stays pushable. Rate bounds apply to the pay rate.
func listDefinition() listquery.Definition[domain.Position] {
	return listquery.Definition[domain.Position]{
		Table: "positions",
		Fields: []listquery.Field[domain.Position]{
			{
				Param:  "clientFilter",
				Column: "positions.client_id",
				Match:  listquery.MatchExact,
				Eval: func(p *domain.Position, v string) bool {
					return uintString(p.ClientID) == v
				},
			},
			{
				Param:  "statusFilter",
				Column: "positions.status",
				Match:  listquery.MatchExact,
				Eval: func(p *domain.Position, v string) bool {
					return p.Status == v
				},
			},
			{
				Param:  "clientName",
				Column: "clients.company_name",
				Join:   "JOIN clients ON clients.id = positions.client_id",
				Match:  listquery.MatchSubstring,
				Eval: func(p *domain.Position, v string) bool {
					return p.Client != nil &&
						strings.Contains(strings.ToLower(p.Client.CompanyName), strings.ToLower(v))
				},
			},
			{
				Param:  "rateMin",
				Column: "positions.pay_rate",
				Match:  listquery.MatchNumberFrom,
				Eval: func(p *domain.Position, v string) bool {
					min, err := decimalFromString(v)
					return err == nil && p.PayRate.GreaterThanOrEqual(min)
				},
			},
			{
				Param:  "rateMax",
				Column: "positions.pay_rate",
				Match:  listquery.MatchNumberTo,
				Eval: func(p *domain.Position, v string) bool {
					max, err := decimalFromString(v)
					return err == nil && p.PayRate.LessThanOrEqual(max)
				},
			},
		},
		SearchText: func(p *domain.Position) []string {
			out := []string{p.ReferenceNumber, p.Title, p.Description}
			if p.Client != nil {
				out = append(out, p.Client.CompanyName)
			}
			return out
		},
		Preload: []string{"Client"},
	}
}

// positionRepository implements domain.PositionRepository using GORM.
type positionRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.Position]
}

// NewPositionRepository creates a PositionRepository backed by the given database.
func NewPositionRepository(db *gorm.DB) domain.PositionRepository {
	return &positionRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

func (r *positionRepository) Create(ctx context.Context, position *domain.Position) error {
	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *positionRepository) GetByID(ctx context.Context, id uint) (*domain.Position, error) {
	var position domain.Position
	if err := r.db.WithContext(ctx).Preload("Client").First(&position, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &position, nil
}

func (r *positionRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.Position], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

func (r *positionRepository) Update(ctx context.Context, position *domain.Position) error {
	if err := r.db.WithContext(ctx).Save(position).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *positionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Position{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReferenceNumbers exposes the "positions" namespace for number allocation.
func (r *positionRepository) ReferenceNumbers() sequence.Source {
	return sequence.NewGormSource(r.db, sequence.TableColumn{Table: "positions", Column: "reference_number"})
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func decimalFromString(v string) (decimal.Decimal, error) {
	return decimal.NewFromString(v)
}
