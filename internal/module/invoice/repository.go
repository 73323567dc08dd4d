package invoice

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// listDefinition declares the invoice list's filter capabilities. Date
// filtering applies to the issue date; emailSent is a boolean filter.
// Global search reaches the related client's name, so it is compute-only.
func listDefinition() listquery.Definition[domain.Invoice] {
	return listquery.Definition[domain.Invoice]{
		Table: "invoices",
		Fields: []listquery.Field[domain.Invoice]{
			{
				Param:  "clientFilter",
				Column: "invoices.client_id",
				Match:  listquery.MatchExact,
				Eval: func(inv *domain.Invoice, v string) bool {
					return strconv.FormatUint(uint64(inv.ClientID), 10) == v
				},
			},
			{
				Param:  "statusFilter",
				Column: "invoices.status",
				Match:  listquery.MatchExact,
				Eval: func(inv *domain.Invoice, v string) bool {
					return inv.Status == v
				},
			},
			{
				Param:  "dateRangeStart",
				Column: "invoices.issue_date",
				Match:  listquery.MatchDateFrom,
				Eval: func(inv *domain.Invoice, v string) bool {
					from, _ := time.Parse(listquery.DateLayout, v)
					return !inv.IssueDate.Before(from)
				},
			},
			{
				Param:  "dateRangeEnd",
				Column: "invoices.issue_date",
				Match:  listquery.MatchDateTo,
				Eval: func(inv *domain.Invoice, v string) bool {
					to, _ := time.Parse(listquery.DateLayout, v)
					return !inv.IssueDate.After(to)
				},
			},
			{
				Param:  "emailSent",
				Column: "invoices.email_sent",
				Match:  listquery.MatchBool,
				Eval: func(inv *domain.Invoice, v string) bool {
					return strconv.FormatBool(inv.EmailSent) == v
				},
			},
		},
		SearchText: func(inv *domain.Invoice) []string {
			out := []string{inv.InvoiceNumber, inv.Status}
			if inv.Client != nil {
				out = append(out, inv.Client.CompanyName)
			}
			return out
		},
		Preload: []string{"Client"},
	}
}

// invoiceRepository implements domain.InvoiceRepository using GORM.
type invoiceRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.Invoice]
}

// NewInvoiceRepository creates an InvoiceRepository backed by the given database.
func NewInvoiceRepository(db *gorm.DB) domain.InvoiceRepository {
	return &invoiceRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).Preload("Client").First(&inv, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.Invoice], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

// CommitUpdate writes fields guarded by the expected version. Zero rows
// affected is disambiguated into NotFound or Conflict by checking whether
// the record still exists.
func (r *invoiceRepository) CommitUpdate(ctx context.Context, id uint, expectedVersion int, fields map[string]any) error {
	return pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.
			Model(&domain.Invoice{}).
			Where("id = ? AND version = ?", id, expectedVersion).
			Updates(fields)
		if result.Error != nil {
			return pkg.MapDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Invoice{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return pkg.MapDBError(err)
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.NewAppError(domain.CodeConflict, "version conflict", nil)
		}
		return nil
	})
}

// UpdateFields writes version-exempt fields without touching version state
// and without a version guard.
func (r *invoiceRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Invoice{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Numbers exposes the shared "invoices" namespace: every invoice number in
// use across invoices and bulk timesheets.
func (r *invoiceRepository) Numbers() sequence.Source {
	return sequence.NewGormSource(r.db,
		sequence.TableColumn{Table: "invoices", Column: "invoice_number"},
		sequence.TableColumn{Table: "bulk_timesheets", Column: "invoice_number"},
	)
}
