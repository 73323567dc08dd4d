package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
)

// setupTestDB creates an in-memory SQLite database with the Client table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Client{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	client := &domain.Client{CompanyName: "Acme Corp", Industry: "manufacturing", CreatedBy: 1}
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if client.ID == 0 {
		t.Fatal("expected non-zero ID after Create")
	}

	got, err := repo.GetByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CompanyName != "Acme Corp" || got.Industry != "manufacturing" {
		t.Errorf("got %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestCreate_DuplicateCompanyName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Client{CompanyName: "Acme Corp"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	err := repo.Create(ctx, &domain.Client{CompanyName: "Acme Corp"})
	if !domain.IsConflict(err) {
		t.Errorf("expected Conflict, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)

	err := repo.Delete(context.Background(), 42)
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func seedClients(t *testing.T, repo domain.ClientRepository, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		industry := "finance"
		if i%2 == 0 {
			industry = "tech"
		}
		err := repo.Create(ctx, &domain.Client{
			CompanyName: fmt.Sprintf("Company %03d", i),
			Industry:    industry,
			CreatedBy:   uint(i%2 + 1),
		})
		if err != nil {
			t.Fatalf("seed client %d: %v", i, err)
		}
	}
}

func TestList_NameFilterSubstring(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	seedClients(t, repo, 12)

	q := listquery.Query{Page: 1, PageSize: 100, Filters: map[string]string{"nameFilter": "Company 01"}}
	page, err := repo.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// Matches 010, 011, 012.
	if page.Pagination.TotalFiltered != 3 {
		t.Errorf("expected 3 matches, got %d", page.Pagination.TotalFiltered)
	}
	if page.Pagination.TotalUnfiltered != 12 {
		t.Errorf("expected totalUnfiltered 12, got %d", page.Pagination.TotalUnfiltered)
	}
}

func TestList_IndustryFilterExact(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	seedClients(t, repo, 10)

	q := listquery.Query{Page: 1, PageSize: 100, Filters: map[string]string{"industryFilter": "tech"}}
	page, err := repo.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 5 {
		t.Errorf("expected 5 tech clients, got %d", page.Pagination.TotalFiltered)
	}
	for _, c := range page.Items {
		if c.Industry != "tech" {
			t.Errorf("client %s has industry %s", c.CompanyName, c.Industry)
		}
	}
}

func TestList_GlobalSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	repo.Create(ctx, &domain.Client{CompanyName: "Globex", ContactName: "Hank Scorpio"})
	repo.Create(ctx, &domain.Client{CompanyName: "Initech", ContactName: "Bill Lumbergh"})

	q := listquery.Query{Page: 1, PageSize: 10, Search: "scorpio"}
	page, err := repo.List(ctx, q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].CompanyName != "Globex" {
		t.Errorf("search should match contact name, got %+v", page.Items)
	}
}

func TestList_OwnershipScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	seedClients(t, repo, 8)

	q := listquery.Query{Page: 1, PageSize: 100}
	page, err := repo.List(context.Background(), q, listquery.OwnedBy("clients.created_by", 1))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalUnfiltered != 4 {
		t.Errorf("expected 4 owned clients, got %d", page.Pagination.TotalUnfiltered)
	}
	for _, c := range page.Items {
		if c.CreatedBy != 1 {
			t.Errorf("client %s leaked from another owner", c.CompanyName)
		}
	}
}
