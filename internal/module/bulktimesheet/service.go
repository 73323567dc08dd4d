package bulktimesheet

import (
	"context"
	"time"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/sequence"
	"github.com/staffdesk/staffdesk/internal/versioning"
)

const createAttempts = 3

var validStatuses = map[string]bool{
	domain.BulkTimesheetDraft:    true,
	domain.BulkTimesheetInvoiced: true,
	domain.BulkTimesheetPaid:     true,
}

// Every business field of a bulk timesheet is version-significant; only
// audit columns are exempt. The invoice number is immutable through the
// update path but stays in the set so the policy covers the full field list.
var versionPolicy = versioning.NewPolicy(
	"client_id", "period_start", "period_end", "total_hours", "total_amount",
	"status", "invoice_number",
)

// bulkTimesheetService implements domain.BulkTimesheetService. Its invoice
// numbers come from the shared "invoices" namespace, which spans both
// regular invoices and bulk timesheets.
type bulkTimesheetService struct {
	repo    domain.BulkTimesheetRepository
	alloc   *sequence.Allocator
	numbers sequence.Source
	now     func() time.Time
}

// NewBulkTimesheetService creates a BulkTimesheetService. numbers must be
// the shared invoice-number namespace source.
func NewBulkTimesheetService(repo domain.BulkTimesheetRepository, alloc *sequence.Allocator, numbers sequence.Source) domain.BulkTimesheetService {
	return &bulkTimesheetService{
		repo:    repo,
		alloc:   alloc,
		numbers: numbers,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateBulkTimesheet allocates an invoice number from the shared namespace,
// initializes version state, and persists the record. Number conflicts from
// concurrent allocations trigger a bounded retry.
func (s *bulkTimesheetService) CreateBulkTimesheet(ctx context.Context, actor domain.Actor, bt *domain.BulkTimesheet) (*domain.BulkTimesheet, error) {
	if err := validateBulkTimesheet(bt); err != nil {
		return nil, err
	}
	if bt.Status == "" {
		bt.Status = domain.BulkTimesheetDraft
	}
	bt.Versioned = versioning.NewRecord(actor.ID, s.now())

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		num, err := s.alloc.Next(ctx, s.numbers)
		if err != nil {
			return nil, err
		}
		bt.InvoiceNumber = domain.InvoiceNumberPrefix + num

		err = s.repo.Create(ctx, bt)
		if err == nil {
			return bt, nil
		}
		if !domain.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *bulkTimesheetService) GetBulkTimesheet(ctx context.Context, actor domain.Actor, id uint) (*domain.BulkTimesheet, error) {
	bt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && bt.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return bt, nil
}

func (s *bulkTimesheetService) ListBulkTimesheets(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.BulkTimesheet], error) {
	return s.repo.List(ctx, q, visibilityScope(actor))
}

// UpdateBulkTimesheet applies a partial update under optimistic version
// control. Touching any significant field bumps the version by one and
// appends a history entry; the write is conditional on the version the
// record had when loaded, so a losing racer gets a Conflict.
func (s *bulkTimesheetService) UpdateBulkTimesheet(ctx context.Context, actor domain.Actor, id uint, update domain.BulkTimesheetUpdate) (*domain.BulkTimesheet, error) {
	existing, err := s.GetBulkTimesheet(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields, changed := updateFields(update)
	if len(changed) == 0 {
		return existing, nil
	}
	if status, ok := fields["status"].(string); ok && !validStatuses[status] {
		return nil, domain.NewAppError(domain.CodeValidation, "invalid status", nil)
	}

	expectedVersion := existing.Version
	versionPolicy.Apply(&existing.Versioned, changed, actor.ID, s.now())
	fields["version"] = existing.Version
	fields["version_history"] = existing.VersionHistory
	fields["updated_by"] = existing.UpdatedBy

	if err := s.repo.CommitUpdate(ctx, id, expectedVersion, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bulkTimesheetService) DeleteBulkTimesheet(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := s.GetBulkTimesheet(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// updateFields converts the non-nil members of a partial update into a
// column map plus the list of changed column names.
func updateFields(u domain.BulkTimesheetUpdate) (map[string]any, []string) {
	fields := make(map[string]any)
	if u.ClientID != nil {
		fields["client_id"] = *u.ClientID
	}
	if u.PeriodStart != nil {
		fields["period_start"] = *u.PeriodStart
	}
	if u.PeriodEnd != nil {
		fields["period_end"] = *u.PeriodEnd
	}
	if u.TotalHours != nil {
		fields["total_hours"] = *u.TotalHours
	}
	if u.TotalAmount != nil {
		fields["total_amount"] = *u.TotalAmount
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	changed := make([]string, 0, len(fields))
	for col := range fields {
		changed = append(changed, col)
	}
	return fields, changed
}

func validateBulkTimesheet(bt *domain.BulkTimesheet) error {
	if bt.ClientID == 0 {
		return domain.NewAppError(domain.CodeValidation, "clientId is required", nil)
	}
	if bt.PeriodStart.IsZero() || bt.PeriodEnd.IsZero() {
		return domain.NewAppError(domain.CodeValidation, "period is required", nil)
	}
	if bt.PeriodEnd.Before(bt.PeriodStart) {
		return domain.NewAppError(domain.CodeValidation, "periodEnd must not precede periodStart", nil)
	}
	if bt.TotalHours.IsNegative() || bt.TotalAmount.IsNegative() {
		return domain.NewAppError(domain.CodeValidation, "totals must not be negative", nil)
	}
	if bt.Status != "" && !validStatuses[bt.Status] {
		return domain.NewAppError(domain.CodeValidation, "invalid status", nil)
	}
	return nil
}

func visibilityScope(actor domain.Actor) listquery.Scope {
	if actor.Admin() {
		return nil
	}
	return listquery.OwnedBy("bulk_timesheets.created_by", actor.ID)
}
