package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"catalog/internal/domain"
	"catalog/internal/domain/models"
)

// ProductRepository wraps read access to the products table.
type ProductRepository struct {
	DB *sql.DB
}

// List runs the keyset scan for q. It requests one row beyond the page
// limit; the caller uses the extra row as the has-more signal and strips
// it before building the next cursor.
func (r ProductRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Product, error) {
	query, args := buildListSQL(q)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Product, 0, q.Limit+1)
	for rows.Next() {
		var (
			p    models.Product
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			p.Description = &desc.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAll returns up to limit products in catalog order, for exports that
// bypass pagination.
func (r ProductRepository) ListAll(ctx context.Context, limit int) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, category, price, created_at, updated_at
		 FROM products ORDER BY category, name, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var (
			p    models.Product
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			p.Description = &desc.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// buildListSQL translates a normalized query into a bounded range scan.
// When a cursor is present the predicate is the standard keyset
// tie-break over (sortField, id): strictly past the cursor row in sort
// direction, with id breaking ties on equal sort values. Both ORDER BY
// columns share the direction so the tie-break stays consistent.
func buildListSQL(q domain.ListQuery) (string, []any) {
	var (
		where []string
		args  []any
	)

	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.Search != "" {
		where = append(where, "MATCH(name, description) AGAINST (? IN NATURAL LANGUAGE MODE)")
		args = append(args, q.Search)
	}

	col := string(q.SortBy)

	if q.Cursor != nil {
		op := "<"
		if q.Order == domain.SortAsc {
			op = ">"
		}
		where = append(where, fmt.Sprintf("(%s %s ? OR (%s = ? AND id %s ?))", col, op, col, op))
		v := cursorSortValue(q.SortBy, *q.Cursor)
		args = append(args, v, v, q.Cursor.ID)
	}

	dir := "DESC"
	if q.Order == domain.SortAsc {
		dir = "ASC"
	}

	var b strings.Builder
	b.WriteString("SELECT id, name, description, category, price, created_at, updated_at FROM products")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	fmt.Fprintf(&b, " ORDER BY %s %s, id %s LIMIT ?", col, dir, dir)
	args = append(args, q.Limit+1)

	return b.String(), args
}

func cursorSortValue(field domain.SortField, c domain.Cursor) any {
	switch field {
	case domain.SortPrice:
		return *c.Price
	case domain.SortName:
		return *c.Name
	default:
		return c.CreatedAt
	}
}
