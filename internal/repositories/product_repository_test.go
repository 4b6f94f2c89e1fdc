package repositories

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"catalog/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBuildListSQLNoFilters(t *testing.T) {
	q := domain.ListQuery{Limit: 20, SortBy: domain.SortCreatedAt, Order: domain.SortDesc}

	query, args := buildListSQL(q)

	if strings.Contains(query, "WHERE") {
		t.Fatalf("unexpected WHERE clause: %s", query)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC, id DESC") {
		t.Fatalf("missing tie-broken order: %s", query)
	}
	if len(args) != 1 || args[0] != 21 {
		t.Fatalf("expected single overfetch limit arg, got %v", args)
	}
}

func TestBuildListSQLFilters(t *testing.T) {
	min, max := 5.0, 50.0
	q := domain.ListQuery{
		Limit:    10,
		SortBy:   domain.SortCreatedAt,
		Order:    domain.SortDesc,
		Category: "fruits",
		MinPrice: &min,
		MaxPrice: &max,
		Search:   "apple",
	}

	query, args := buildListSQL(q)

	for _, want := range []string{
		"category = ?",
		"price >= ?",
		"price <= ?",
		"MATCH(name, description) AGAINST (? IN NATURAL LANGUAGE MODE)",
	} {
		if !strings.Contains(query, want) {
			t.Fatalf("missing predicate %q in %s", want, query)
		}
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %v", args)
	}
	if args[0] != "fruits" || args[1] != 5.0 || args[2] != 50.0 || args[3] != "apple" || args[4] != 11 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListSQLCursorPredicate(t *testing.T) {
	price := 10.0
	q := domain.ListQuery{
		Limit:  2,
		SortBy: domain.SortPrice,
		Order:  domain.SortAsc,
		Cursor: &domain.Cursor{ID: 2, Price: &price},
	}

	query, args := buildListSQL(q)

	if !strings.Contains(query, "(price > ? OR (price = ? AND id > ?))") {
		t.Fatalf("missing ascending keyset predicate: %s", query)
	}
	if !strings.Contains(query, "ORDER BY price ASC, id ASC") {
		t.Fatalf("order must follow the same direction on both columns: %s", query)
	}
	if len(args) != 4 || args[0] != 10.0 || args[1] != 10.0 || args[2] != int64(2) || args[3] != 3 {
		t.Fatalf("unexpected args: %v", args)
	}

	q.Order = domain.SortDesc
	query, _ = buildListSQL(q)
	if !strings.Contains(query, "(price < ? OR (price = ? AND id < ?))") {
		t.Fatalf("missing descending keyset predicate: %s", query)
	}
}

func TestProductRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "price", "created_at", "updated_at"}).
		AddRow(1, "Apple", "crisp", "fruits", 1.5, now, now).
		AddRow(2, "Banana", nil, "fruits", 0.5, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, category, price, created_at, updated_at FROM products WHERE category = ? ORDER BY created_at DESC, id DESC LIMIT ?")).
		WithArgs("fruits", 21).
		WillReturnRows(rows)

	repo := ProductRepository{DB: db}
	got, err := repo.List(context.Background(), domain.ListQuery{
		Limit:    20,
		SortBy:   domain.SortCreatedAt,
		Order:    domain.SortDesc,
		Category: "fruits",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Description == nil || *got[0].Description != "crisp" {
		t.Fatalf("description not scanned: %+v", got[0])
	}
	if got[1].Description != nil {
		t.Fatalf("NULL description should stay nil: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductRepositoryListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("ORDER BY category, name, id LIMIT").
		WithArgs(500).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "category", "price", "created_at", "updated_at"}).
			AddRow(1, "Oats", "rolled", "grains", 3.2, now, now))

	repo := ProductRepository{DB: db}
	got, err := repo.ListAll(context.Background(), 500)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(got) != 1 || got[0].Category != "grains" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}
