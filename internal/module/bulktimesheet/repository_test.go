package bulktimesheet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/versioning"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(&domain.Client{}, &domain.Invoice{}, &domain.BulkTimesheet{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClient(t *testing.T, db *gorm.DB) domain.Client {
	t.Helper()
	client := domain.Client{CompanyName: "Acme Corp"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func newBT(clientID uint, n int) *domain.BulkTimesheet {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 14*(n-1))
	return &domain.BulkTimesheet{
		Versioned:     versioning.NewRecord(1, time.Now().UTC()),
		InvoiceNumber: fmt.Sprintf("INV-%06d", n),
		ClientID:      clientID,
		PeriodStart:   start,
		PeriodEnd:     start.AddDate(0, 0, 13),
		TotalHours:    decimal.NewFromInt(80),
		TotalAmount:   decimal.NewFromInt(4000),
		Status:        domain.BulkTimesheetDraft,
	}
}

func TestList_TwentyFiveRecordsPageSizeTen(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)
	repo := NewBulkTimesheetRepository(db)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		if err := repo.Create(ctx, newBT(client.ID, i)); err != nil {
			t.Fatalf("seed bulk timesheet %d: %v", i, err)
		}
	}

	page1, err := repo.List(ctx, listquery.Query{Page: 1, PageSize: 10}, nil)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(page1.Items) != 10 {
		t.Fatalf("expected 10 items on page 1, got %d", len(page1.Items))
	}
	m := page1.Pagination
	if m.TotalUnfiltered != 25 || m.TotalFiltered != 25 || m.TotalPages != 3 {
		t.Errorf("unexpected meta: %+v", m)
	}
	if !m.HasNextPage || m.HasPrevPage {
		t.Errorf("unexpected page flags: %+v", m)
	}

	page3, err := repo.List(ctx, listquery.Query{Page: 3, PageSize: 10}, nil)
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(page3.Items) != 5 {
		t.Errorf("expected 5 items on page 3, got %d", len(page3.Items))
	}
	if page3.Pagination.HasNextPage || !page3.Pagination.HasPrevPage {
		t.Errorf("unexpected page 3 flags: %+v", page3.Pagination)
	}
}

func TestCommitUpdate_VersionGuard(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)
	repo := NewBulkTimesheetRepository(db)
	ctx := context.Background()

	bt := newBT(client.ID, 1)
	if err := repo.Create(ctx, bt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.CommitUpdate(ctx, bt.ID, 1, map[string]any{
		"status":  domain.BulkTimesheetInvoiced,
		"version": 2,
	})
	if err != nil {
		t.Fatalf("CommitUpdate: %v", err)
	}

	// A writer still holding the old version loses.
	err = repo.CommitUpdate(ctx, bt.ID, 1, map[string]any{"status": domain.BulkTimesheetPaid})
	if !domain.IsConflict(err) {
		t.Errorf("expected Conflict for stale version, got %v", err)
	}

	got, err := repo.GetByID(ctx, bt.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.BulkTimesheetInvoiced || got.Version != 2 {
		t.Errorf("got status=%s version=%d", got.Status, got.Version)
	}
}

func TestCommitUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBulkTimesheetRepository(db)

	err := repo.CommitUpdate(context.Background(), 999, 1, map[string]any{"status": "paid"})
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestCreate_DuplicateInvoiceNumber(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)
	repo := NewBulkTimesheetRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newBT(client.ID, 1)); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if !domain.IsConflict(repo.Create(ctx, newBT(client.ID, 1))) {
		t.Error("expected Conflict on duplicate invoice number")
	}
}

func TestList_PeriodEndRange(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)
	repo := NewBulkTimesheetRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := repo.Create(ctx, newBT(client.ID, i)); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	// Period ends fall on Jan 14, 28, Feb 11, 25, Mar 11.
	q := listquery.Query{Page: 1, PageSize: 100, Filters: map[string]string{
		"dateRangeStart": "2026-01-20",
		"dateRangeEnd":   "2026-02-28",
	}}
	page, err := repo.List(ctx, q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 3 {
		t.Errorf("expected 3 in period range, got %d", page.Pagination.TotalFiltered)
	}
}

func TestList_SearchOnClientName(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)
	repo := NewBulkTimesheetRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newBT(client.ID, 1)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	page, err := repo.List(ctx, listquery.Query{Page: 1, PageSize: 10, Search: "acme"}, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("expected client-name search to match, got %d items", len(page.Items))
	}
}
