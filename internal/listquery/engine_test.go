package listquery

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Test schema: items belong to a group. The group name is reachable by a
// single direct join, so it can be filtered on either path.

type testGroup struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func (testGroup) TableName() string { return "groups" }

type testItem struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Name      string
	Status    string
	Due       time.Time `gorm:"type:date"`
	OwnerID   uint      `gorm:"column:owner_id"`
	GroupID   uint      `gorm:"column:group_id"`
	Group     *testGroup `gorm:"foreignKey:GroupID"`
}

func (testItem) TableName() string { return "items" }

func testDefinition() Definition[testItem] {
	return Definition[testItem]{
		Table: "items",
		Fields: []Field[testItem]{
			{
				Param:  "statusFilter",
				Column: "items.status",
				Match:  MatchExact,
				Eval:   func(it *testItem, v string) bool { return it.Status == v },
			},
			{
				Param:  "nameFilter",
				Column: "items.name",
				Match:  MatchSubstring,
				Eval: func(it *testItem, v string) bool {
					return strings.Contains(strings.ToLower(it.Name), strings.ToLower(v))
				},
			},
			{
				Param:  "dueFrom",
				Column: "items.due",
				Match:  MatchDateFrom,
				Eval: func(it *testItem, v string) bool {
					from, _ := time.Parse(DateLayout, v)
					return !it.Due.Before(from)
				},
			},
			{
				Param:  "groupFilter",
				Column: "groups.name",
				Join:   "JOIN groups ON groups.id = items.group_id",
				Match:  MatchExact,
				Eval: func(it *testItem, v string) bool {
					return it.Group != nil && it.Group.Name == v
				},
			},
			{
				// Compute-only: no column, always forces the in-memory path.
				Param: "prefixFilter",
				Eval: func(it *testItem, v string) bool {
					return strings.HasPrefix(it.Name, v)
				},
			},
		},
		SearchText: func(it *testItem) []string {
			out := []string{it.Name, it.Status}
			if it.Group != nil {
				out = append(out, it.Group.Name)
			}
			return out
		},
		Preload: []string{"Group"},
	}
}

func setupEngineDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&testGroup{}, &testItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedItems creates n items with strictly increasing creation times, so the
// newest-first order matches descending ID. Items alternate between two
// groups and two statuses, and owners alternate between 1 and 2.
func seedItems(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	groups := []testGroup{{Name: "Acme Corp"}, {Name: "Globex"}}
	for i := range groups {
		if err := db.Create(&groups[i]).Error; err != nil {
			t.Fatalf("seed group: %v", err)
		}
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		status := "open"
		if i%2 == 0 {
			status = "closed"
		}
		item := testItem{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Name:      fmt.Sprintf("item-%03d", i),
			Status:    status,
			Due:       base.AddDate(0, 0, i),
			OwnerID:   uint(i%2 + 1),
			GroupID:   groups[(i-1)%2].ID,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("seed item %d: %v", i, err)
		}
	}
}

func TestList_PagesNewestFirst(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 25)
	eng := NewEngine(db, testDefinition())

	page, err := eng.List(context.Background(), Query{Page: 1, PageSize: 10}, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Items))
	}
	if page.Items[0].Name != "item-025" {
		t.Errorf("expected newest item first, got %s", page.Items[0].Name)
	}

	m := page.Pagination
	if m.TotalUnfiltered != 25 || m.TotalFiltered != 25 {
		t.Errorf("totals = %d/%d, want 25/25", m.TotalUnfiltered, m.TotalFiltered)
	}
	if m.TotalPages != 3 || !m.HasNextPage || m.HasPrevPage {
		t.Errorf("unexpected meta: %+v", m)
	}

	last, err := eng.List(context.Background(), Query{Page: 3, PageSize: 10}, nil)
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(last.Items) != 5 {
		t.Errorf("expected 5 items on last page, got %d", len(last.Items))
	}
	if last.Pagination.HasNextPage || !last.Pagination.HasPrevPage {
		t.Errorf("unexpected last-page meta: %+v", last.Pagination)
	}
}

func TestList_PushedExactFilter(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 20)
	eng := NewEngine(db, testDefinition())

	q := Query{Page: 1, PageSize: 100, Filters: map[string]string{"statusFilter": "open"}}
	page, err := eng.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 10 {
		t.Errorf("expected 10 open items, got %d", page.Pagination.TotalFiltered)
	}
	if page.Pagination.TotalUnfiltered != 20 {
		t.Errorf("expected totalUnfiltered 20, got %d", page.Pagination.TotalUnfiltered)
	}
	for _, it := range page.Items {
		if it.Status != "open" {
			t.Errorf("item %s has status %s", it.Name, it.Status)
		}
	}
}

func TestList_JoinPushedFilter(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 10)
	eng := NewEngine(db, testDefinition())

	q := Query{Page: 1, PageSize: 100, Filters: map[string]string{"groupFilter": "Acme Corp"}}
	page, err := eng.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 5 {
		t.Errorf("expected 5 Acme items, got %d", page.Pagination.TotalFiltered)
	}
	// Ordering must survive the join (qualified columns).
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].ID < page.Items[i].ID {
			t.Errorf("items out of order: %d before %d", page.Items[i-1].ID, page.Items[i].ID)
		}
	}
}

func TestList_MalformedValuesDropped(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 8)
	eng := NewEngine(db, testDefinition())

	q := Query{Page: 1, PageSize: 100, Filters: map[string]string{"dueFrom": "not-a-date"}}
	page, err := eng.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 8 {
		t.Errorf("malformed date should be dropped, got totalFiltered %d", page.Pagination.TotalFiltered)
	}
}

func TestList_UnknownParamIgnored(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 4)
	eng := NewEngine(db, testDefinition())

	q := Query{Page: 1, PageSize: 100, Filters: map[string]string{"bogus": "whatever"}}
	page, err := eng.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 4 {
		t.Errorf("unknown param should be ignored, got totalFiltered %d", page.Pagination.TotalFiltered)
	}
}

func TestList_DateRangeFilter(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 10)
	eng := NewEngine(db, testDefinition())

	// Items are due Jan 2 through Jan 11; from Jan 8 leaves 4.
	q := Query{Page: 1, PageSize: 100, Filters: map[string]string{"dueFrom": "2026-01-08"}}
	page, err := eng.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 4 {
		t.Errorf("expected 4 items due from Jan 8, got %d", page.Pagination.TotalFiltered)
	}
}

func TestList_SearchForcesInMemory(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 12)
	eng := NewEngine(db, testDefinition())

	// Search matches the related group name, which only the in-memory path
	// can see. Case-insensitive.
	q := Query{Page: 1, PageSize: 100, Search: "globex"}
	page, err := eng.List(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalFiltered != 6 {
		t.Errorf("expected 6 Globex items, got %d", page.Pagination.TotalFiltered)
	}
	for _, it := range page.Items {
		if it.Group == nil || it.Group.Name != "Globex" {
			t.Errorf("item %s matched search unexpectedly", it.Name)
		}
	}
}

// The same criterion must produce identical items and metadata regardless of
// which path executes it. A compute-only filter that matches everything
// forces the fallback without changing the result set.
func TestList_PathsAgree(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 25)
	eng := NewEngine(db, testDefinition())
	ctx := context.Background()

	pushedQ := Query{Page: 2, PageSize: 5, Filters: map[string]string{"statusFilter": "open"}}
	pushed, err := eng.List(ctx, pushedQ, nil)
	if err != nil {
		t.Fatalf("pushed List: %v", err)
	}

	memQ := Query{Page: 2, PageSize: 5, Filters: map[string]string{
		"statusFilter": "open",
		"prefixFilter": "item-",
	}}
	inMem, err := eng.List(ctx, memQ, nil)
	if err != nil {
		t.Fatalf("in-memory List: %v", err)
	}

	if pushed.Pagination != inMem.Pagination {
		t.Errorf("metadata diverged: pushed %+v, in-memory %+v", pushed.Pagination, inMem.Pagination)
	}
	if len(pushed.Items) != len(inMem.Items) {
		t.Fatalf("item counts diverged: %d vs %d", len(pushed.Items), len(inMem.Items))
	}
	for i := range pushed.Items {
		if pushed.Items[i].ID != inMem.Items[i].ID {
			t.Errorf("item %d diverged: id %d vs %d", i, pushed.Items[i].ID, inMem.Items[i].ID)
		}
	}
}

func TestList_ScopeRestrictsBothTotals(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 10)
	eng := NewEngine(db, testDefinition())

	page, err := eng.List(context.Background(), Query{Page: 1, PageSize: 100}, OwnedBy("items.owner_id", 1))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalUnfiltered != 5 {
		t.Errorf("scope must bound totalUnfiltered, got %d", page.Pagination.TotalUnfiltered)
	}
	for _, it := range page.Items {
		if it.OwnerID != 1 {
			t.Errorf("item %s leaked from another owner", it.Name)
		}
	}
}

func TestList_PageBeyondEnd(t *testing.T) {
	db := setupEngineDB(t)
	seedItems(t, db, 3)
	eng := NewEngine(db, testDefinition())

	for _, q := range []Query{
		{Page: 9, PageSize: 10},
		{Page: 9, PageSize: 10, Filters: map[string]string{"prefixFilter": "item-"}},
	} {
		page, err := eng.List(context.Background(), q, nil)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(page.Items) != 0 {
			t.Errorf("expected empty window beyond last page, got %d items", len(page.Items))
		}
		if page.Items == nil {
			t.Error("items must be an empty slice, not nil")
		}
		if page.Pagination.TotalFiltered != 3 {
			t.Errorf("expected totalFiltered 3, got %d", page.Pagination.TotalFiltered)
		}
	}
}
