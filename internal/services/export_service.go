package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"catalog/internal/domain"
	"catalog/internal/domain/models"

	"github.com/phpdave11/gofpdf"
)

const exportMaxRows = 500

// ProductExporter is the repository surface the export needs.
type ProductExporter interface {
	ListAll(ctx context.Context, limit int) ([]models.Product, error)
}

// ExportService renders the catalog price list as a PDF. Exports read
// the record store directly; they are rare and must not occupy listing
// cache slots.
type ExportService struct {
	Repo ProductExporter
}

func (s ExportService) GeneratePriceList(ctx context.Context) ([]byte, string, error) {
	products, err := s.Repo.ListAll(ctx, exportMaxRows)
	if err != nil {
		return nil, "", domain.UpstreamUnavailableError{Upstream: "product store", Err: err}
	}
	return buildPriceListPDF(products)
}

func buildPriceListPDF(products []models.Product) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Catalog Price List", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CATALOG PRICE LIST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	var category string
	for _, p := range products {
		if p.Category != category {
			category = p.Category
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Cell(0, 8, category)
			pdf.Ln(8)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.Cell(120, 6, p.Name)
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", p.Price), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	if len(products) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "No products in catalog.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("price-list-%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
