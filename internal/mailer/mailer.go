// Package mailer provides the outbound invoice email dispatcher.
package mailer

import (
	"context"
	"log/slog"

	"github.com/staffdesk/staffdesk/internal/domain"
)

// LogMailer implements domain.Mailer by recording the dispatch through the
// application logger. It stands in for a real mail provider; swapping in an
// SMTP- or API-backed implementation only touches app wiring.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer writing to the given logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// SendInvoice logs the dispatch and returns nil.
func (m *LogMailer) SendInvoice(ctx context.Context, inv *domain.Invoice, recipient string) error {
	m.logger.InfoContext(ctx, "invoice email dispatched",
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.Uint64("invoice_id", uint64(inv.ID)),
		slog.String("recipient", recipient),
		slog.String("grand_total", inv.GrandTotal.String()),
	)
	return nil
}
