package invoice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/sequence"
	"github.com/staffdesk/staffdesk/internal/versioning"
)

const createAttempts = 3

var validStatuses = map[string]bool{
	domain.InvoiceDraft: true,
	domain.InvoiceSent:  true,
	domain.InvoicePaid:  true,
}

// The email-sent flag and timestamp are exempt: marking an invoice as
// emailed must not rewrite its financial history.
var versionPolicy = versioning.NewPolicy(
	"client_id", "issue_date", "due_date", "subtotal", "tax_amount",
	"grand_total", "status", "document_path",
)

// invoiceService implements domain.InvoiceService.
type invoiceService struct {
	repo   domain.InvoiceRepository
	alloc  *sequence.Allocator
	mailer domain.Mailer
	now    func() time.Time
}

// NewInvoiceService creates an InvoiceService with the given repository,
// number allocator, and mailer.
func NewInvoiceService(repo domain.InvoiceRepository, alloc *sequence.Allocator, mailer domain.Mailer) domain.InvoiceService {
	return &invoiceService{
		repo:   repo,
		alloc:  alloc,
		mailer: mailer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NextNumber previews the next available invoice number without reserving
// it. Two callers previewing concurrently may see the same value; the
// loser's create resolves the race by re-allocating.
func (s *invoiceService) NextNumber(ctx context.Context) (string, error) {
	return s.alloc.Next(ctx, s.repo.Numbers())
}

// CreateInvoice persists a new invoice. A caller-supplied number (from a
// preview) is honored as-is and a conflict on it surfaces to the caller;
// when no number is supplied, one is allocated with a bounded retry.
func (s *invoiceService) CreateInvoice(ctx context.Context, actor domain.Actor, inv *domain.Invoice) (*domain.Invoice, error) {
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}
	inv.Versioned = versioning.NewRecord(actor.ID, s.now())

	if supplied := strings.TrimSpace(inv.InvoiceNumber); supplied != "" {
		inv.InvoiceNumber = normalizeNumber(supplied)
		if err := s.repo.Create(ctx, inv); err != nil {
			return nil, err
		}
		return inv, nil
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		num, err := s.alloc.Next(ctx, s.repo.Numbers())
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = domain.InvoiceNumberPrefix + num

		err = s.repo.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !domain.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *invoiceService) GetInvoice(ctx context.Context, actor domain.Actor, id uint) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && inv.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.Invoice], error) {
	return s.repo.List(ctx, q, visibilityScope(actor))
}

// UpdateInvoice applies a partial update under optimistic version control.
func (s *invoiceService) UpdateInvoice(ctx context.Context, actor domain.Actor, id uint, update domain.InvoiceUpdate) (*domain.Invoice, error) {
	existing, err := s.GetInvoice(ctx, actor, id)
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

func (s *invoiceService) DeleteInvoice(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := s.GetInvoice(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AttachDocument records a freshly generated document path. The path is a
// version-significant field, so the write is version-guarded.
func (s *invoiceService) AttachDocument(ctx context.Context, actor domain.Actor, id uint) (*domain.Invoice, error) {
	existing, err := s.GetInvoice(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	path := "invoices/" + existing.InvoiceNumber + "-" + uuid.NewString() + ".pdf"

	expectedVersion := existing.Version
	versionPolicy.Apply(&existing.Versioned, []string{"document_path"}, actor.ID, s.now())
	fields := map[string]any{
		"document_path":   path,
		"version":         existing.Version,
		"version_history": existing.VersionHistory,
		"updated_by":      existing.UpdatedBy,
	}

	if err := s.repo.CommitUpdate(ctx, id, expectedVersion, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// SendInvoice dispatches the invoice email and then records the send as a
// version-exempt mutation. The mailer runs outside any version-guarded
// write: a failed dispatch leaves the record untouched.
func (s *invoiceService) SendInvoice(ctx context.Context, actor domain.Actor, id uint) (*domain.Invoice, error) {
	existing, err := s.GetInvoice(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if existing.Client == nil || strings.TrimSpace(existing.Client.Email) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "client has no email address", nil)
	}

	if err := s.mailer.SendInvoice(ctx, existing, existing.Client.Email); err != nil {
		return nil, domain.NewAppError(domain.CodeUnavailable, "email dispatch failed", err)
	}

	sentAt := s.now()
	err = s.repo.UpdateFields(ctx, id, map[string]any{
		"email_sent":    true,
		"email_sent_at": sentAt,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// updateFields converts the non-nil members of a partial update into a
// column map plus the list of changed column names.
func updateFields(u domain.InvoiceUpdate) (map[string]any, []string) {
	fields := make(map[string]any)
	if u.ClientID != nil {
		fields["client_id"] = *u.ClientID
	}
	if u.IssueDate != nil {
		fields["issue_date"] = *u.IssueDate
	}
	if u.DueDate != nil {
		fields["due_date"] = *u.DueDate
	}
	if u.Subtotal != nil {
		fields["subtotal"] = *u.Subtotal
	}
	if u.TaxAmount != nil {
		fields["tax_amount"] = *u.TaxAmount
	}
	if u.GrandTotal != nil {
		fields["grand_total"] = *u.GrandTotal
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

// normalizeNumber ensures a caller-supplied number carries the prefix.
func normalizeNumber(num string) string {
	if strings.HasPrefix(num, domain.InvoiceNumberPrefix) {
		return num
	}
	return domain.InvoiceNumberPrefix + num
}

func validateInvoice(inv *domain.Invoice) error {
	if inv.ClientID == 0 {
		return domain.NewAppError(domain.CodeValidation, "clientId is required", nil)
	}
	if inv.IssueDate.IsZero() || inv.DueDate.IsZero() {
		return domain.NewAppError(domain.CodeValidation, "issueDate and dueDate are required", nil)
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return domain.NewAppError(domain.CodeValidation, "dueDate must not precede issueDate", nil)
	}
	if inv.Subtotal.IsNegative() || inv.TaxAmount.IsNegative() || inv.GrandTotal.IsNegative() {
		return domain.NewAppError(domain.CodeValidation, "amounts must not be negative", nil)
	}
	if inv.Status != "" && !validStatuses[inv.Status] {
		return domain.NewAppError(domain.CodeValidation, "invalid status", nil)
	}
	return nil
}

func visibilityScope(actor domain.Actor) listquery.Scope {
	if actor.Admin() {
		return nil
	}
	return listquery.OwnedBy("invoices.created_by", actor.ID)
}
