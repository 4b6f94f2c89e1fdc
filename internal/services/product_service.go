package services

import (
	"context"
	"time"

	"catalog/internal/coordination"
	"catalog/internal/domain"
	"catalog/internal/domain/models"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// ListingCacheTTL bounds how stale a cached page can get; this layer
// never invalidates on writes.
const ListingCacheTTL = 60 * time.Second

// ProductLister abstracts the record store scan so the service can be
// tested against a fake.
type ProductLister interface {
	List(ctx context.Context, q domain.ListQuery) ([]models.Product, error)
}

// ProductService serves catalog pages cache-aside: check the
// coordination store, fall back to the record store on miss, repopulate.
type ProductService struct {
	Repo  ProductLister
	Cache coordination.Store
	TTL   time.Duration
	Log   *zap.Logger
}

func NewProductService(repo ProductLister, cache coordination.Store, log *zap.Logger) *ProductService {
	return &ProductService{Repo: repo, Cache: cache, TTL: ListingCacheTTL, Log: log}
}

func (s *ProductService) List(ctx context.Context, q domain.ListQuery) (domain.ListResult, error) {
	key := coordination.ListingKey(q.Fingerprint())

	// An unreachable cache degrades to a miss; the request is served
	// from the record store instead of failing.
	raw, hit, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Log.Warn("listing cache unavailable, serving from store", zap.Error(err))
	} else if hit {
		var cached domain.ListResult
		derr := msgpack.Unmarshal([]byte(raw), &cached)
		if derr == nil {
			s.Log.Debug("listing cache hit", zap.String("key", key))
			return cached, nil
		}
		s.Log.Warn("listing cache entry undecodable, requerying",
			zap.String("key", key), zap.Error(derr))
	}

	rows, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.ListResult{}, domain.UpstreamUnavailableError{Upstream: "product store", Err: err}
	}

	result := buildListResult(q, rows)

	// A failed population is logged and swallowed; the page was already
	// computed and the next miss will try again.
	if encoded, merr := msgpack.Marshal(result); merr == nil {
		if serr := s.Cache.SetEx(ctx, key, string(encoded), s.TTL); serr != nil {
			s.Log.Warn("listing cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}

	return result, nil
}

// buildListResult strips the overfetch row and derives the next cursor
// from the last row that stays on the page, carrying only the active
// sort field's value.
func buildListResult(q domain.ListQuery, rows []models.Product) domain.ListResult {
	hasMore := len(rows) > q.Limit
	data := rows
	if hasMore {
		data = rows[:q.Limit]
	}
	if data == nil {
		data = []models.Product{}
	}

	result := domain.ListResult{Data: data, HasMore: hasMore}
	if hasMore && len(data) > 0 {
		last := data[len(data)-1]
		c := domain.Cursor{ID: last.ID}
		switch q.SortBy {
		case domain.SortPrice:
			price := last.Price
			c.Price = &price
		case domain.SortName:
			name := last.Name
			c.Name = &name
		default:
			c.CreatedAt = domain.CursorTime(last.CreatedAt)
		}
		token := domain.EncodeCursor(c)
		result.NextCursor = &token
	}
	return result
}
