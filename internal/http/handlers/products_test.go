package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/internal/domain"
	"catalog/internal/domain/models"
	"catalog/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubListing struct {
	got    domain.ListQuery
	result domain.ListResult
	err    error
}

func (s *stubListing) List(_ context.Context, q domain.ListQuery) (domain.ListResult, error) {
	s.got = q
	return s.result, s.err
}

type stubCatalog struct {
	products []models.Product
	err      error
}

func (s stubCatalog) ListAll(context.Context, int) ([]models.Product, error) {
	return s.products, s.err
}

func productsRouter(h ProductHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", h.List)
	r.GET("/products/export.pdf", h.ExportPriceList)
	return r
}

func TestProductsListResponseShape(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	token := domain.EncodeCursor(domain.Cursor{ID: 2, CreatedAt: domain.CursorTime(now)})
	svc := &stubListing{result: domain.ListResult{
		Data: []models.Product{
			{ID: 1, Name: "Apple", Category: "fruits", Price: 1.5, CreatedAt: now, UpdatedAt: now},
			{ID: 2, Name: "Banana", Category: "fruits", Price: 0.5, CreatedAt: now, UpdatedAt: now},
		},
		NextCursor: &token,
		HasMore:    true,
	}}
	r := productsRouter(ProductHandler{Svc: svc})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/products?limit=2&sortBy=price&sortOrder=asc&category=fruits&minPrice=0.1&q=fruit", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []json.RawMessage `json:"data"`
		NextCursor *string           `json:"nextCursor"`
		HasMore    bool              `json:"hasMore"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.True(t, body.HasMore)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, token, *body.NextCursor)

	// the handler hands the service a normalized query
	assert.Equal(t, 2, svc.got.Limit)
	assert.Equal(t, domain.SortPrice, svc.got.SortBy)
	assert.Equal(t, domain.SortAsc, svc.got.Order)
	assert.Equal(t, "fruits", svc.got.Category)
	require.NotNil(t, svc.got.MinPrice)
	assert.Equal(t, 0.1, *svc.got.MinPrice)
	assert.Equal(t, "fruit", svc.got.Search)
}

func TestProductsListNullCursorWhenLastPage(t *testing.T) {
	svc := &stubListing{result: domain.ListResult{Data: []models.Product{}, HasMore: false}}
	r := productsRouter(ProductHandler{Svc: svc})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"nextCursor":null,"hasMore":false}`, w.Body.String())
}

func TestProductsListInvalidCursor(t *testing.T) {
	r := productsRouter(ProductHandler{Svc: &stubListing{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?cursor=@@@", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid cursor format")
}

func TestProductsListStoreDown(t *testing.T) {
	svc := &stubListing{err: errUpstream()}
	r := productsRouter(ProductHandler{Svc: svc})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProductsExportPDF(t *testing.T) {
	now := time.Now()
	h := ProductHandler{
		Svc: &stubListing{},
		Export: services.ExportService{Repo: stubCatalog{products: []models.Product{
			{ID: 1, Name: "Apple", Category: "fruits", Price: 1.5, CreatedAt: now, UpdatedAt: now},
		}}},
	}
	r := productsRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/export.pdf", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "price-list-")
	assert.True(t, len(w.Body.Bytes()) > 0)
}
