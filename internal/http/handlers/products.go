package handlers

import (
	"context"
	"net/http"

	"catalog/internal/domain"
	"catalog/internal/services"

	"github.com/gin-gonic/gin"
)

// ProductListing is the service surface the handler depends on.
type ProductListing interface {
	List(ctx context.Context, q domain.ListQuery) (domain.ListResult, error)
}

type ProductHandler struct {
	Svc    ProductListing
	Export services.ExportService
}

// List serves GET /products.
func (h ProductHandler) List(c *gin.Context) {
	q, err := domain.ParseListQuery(domain.ListParams{
		Limit:     c.Query("limit"),
		Cursor:    c.Query("cursor"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Category:  c.Query("category"),
		MinPrice:  c.Query("minPrice"),
		MaxPrice:  c.Query("maxPrice"),
		Search:    c.Query("q"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	result, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportPriceList serves GET /products/export.pdf.
func (h ProductHandler) ExportPriceList(c *gin.Context) {
	pdf, filename, err := h.Export.GeneratePriceList(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
