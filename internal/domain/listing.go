package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"catalog/internal/domain/models"
)

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortPrice     SortField = "price"
	SortName      SortField = "name"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListParams are the raw listing query parameters as received on the
// wire, before normalization.
type ListParams struct {
	Limit     string
	Cursor    string
	SortBy    string
	SortOrder string
	Category  string
	MinPrice  string
	MaxPrice  string
	Search    string
}

// ListQuery is the normalized, immutable form of a listing request.
type ListQuery struct {
	Limit    int
	SortBy   SortField
	Order    SortOrder
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Cursor   *Cursor
}

// ListResult is one page of the catalog. HasMore is true exactly when
// NextCursor is set.
type ListResult struct {
	Data       []models.Product `json:"data" msgpack:"data"`
	NextCursor *string          `json:"nextCursor" msgpack:"next_cursor"`
	HasMore    bool             `json:"hasMore" msgpack:"has_more"`
}

// ParseListQuery normalizes raw parameters. Non-numeric price filters are
// dropped rather than rejected, unknown sort fields fall back to
// created_at, and anything other than "asc" sorts descending. A cursor
// that does not carry the active sort field is ignored (pagination
// silently resets); only a token that fails to decode is an error.
func ParseListQuery(p ListParams) (ListQuery, error) {
	q := ListQuery{
		Limit:    DefaultLimit,
		SortBy:   SortCreatedAt,
		Order:    SortDesc,
		Category: strings.TrimSpace(p.Category),
		Search:   strings.TrimSpace(p.Search),
	}

	if n, err := strconv.Atoi(strings.TrimSpace(p.Limit)); err == nil && n > 0 {
		q.Limit = n
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	switch SortField(strings.TrimSpace(p.SortBy)) {
	case SortPrice:
		q.SortBy = SortPrice
	case SortName:
		q.SortBy = SortName
	}

	if strings.TrimSpace(p.SortOrder) == string(SortAsc) {
		q.Order = SortAsc
	}

	if v := strings.TrimSpace(p.MinPrice); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = &f
		}
	}
	if v := strings.TrimSpace(p.MaxPrice); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &f
		}
	}

	if token := strings.TrimSpace(p.Cursor); token != "" {
		c, err := DecodeCursor(token)
		if err != nil {
			return ListQuery{}, err
		}
		if c.Matches(q.SortBy) {
			q.Cursor = &c
		}
	}

	return q, nil
}

// Fingerprint returns a deterministic key for the normalized query,
// suitable for caching one page per distinct query. Two requests that
// normalize identically fingerprint identically; distinct cursors yield
// distinct fingerprints because each page is cached on its own.
func (q ListQuery) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "limit=%d|sort=%s|order=%s|category=%s|q=%s",
		q.Limit, q.SortBy, q.Order, q.Category, q.Search)
	if q.MinPrice != nil {
		fmt.Fprintf(&b, "|min=%g", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		fmt.Fprintf(&b, "|max=%g", *q.MaxPrice)
	}
	if q.Cursor != nil {
		b.WriteString("|cursor=")
		b.WriteString(EncodeCursor(*q.Cursor))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}
