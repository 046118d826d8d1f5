package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tribe-africa-store/models"
	"tribe-africa-store/repository"
)

// Quoter prices a product for display
type Quoter interface {
	Quote(p models.Product) models.PriceQuote
}

// Lookbook renders the printable catalog
type Lookbook interface {
	RenderHTML(ctx context.Context) (string, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
}

// ProductResponse is a catalog product with its display pricing
type ProductResponse struct {
	models.Product
	Quote models.PriceQuote `json:"quote"`
}

// CatalogController handles HTTP requests for the read-only catalog
type CatalogController struct {
	catalog  repository.CatalogRepositoryInterface
	quoter   Quoter
	lookbook Lookbook
	now      func() time.Time
	logger   *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog repository.CatalogRepositoryInterface, quoter Quoter, lookbook Lookbook, logger *zap.Logger) *CatalogController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogController{
		catalog:  catalog,
		quoter:   quoter,
		lookbook: lookbook,
		now:      time.Now,
		logger:   logger,
	}
}

// ListProducts handles GET /products
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := c.catalog.List(r.Context())
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{Product: p, Quote: c.quoter.Quote(p)})
	}
	writeJSON(w, c.logger, http.StatusOK, out)
}

// GetProduct handles GET /products/{id}
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := c.catalog.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, ProductResponse{Product: p, Quote: c.quoter.Quote(p)})
}

// ListDesigns handles GET /designs?q=&category=
func (c *CatalogController) ListDesigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, c.logger, http.StatusOK, c.catalog.Designs(r.Context(), q.Get("q"), q.Get("category")))
}

// ListBanners handles GET /banners
func (c *CatalogController) ListBanners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.logger, http.StatusOK, c.catalog.ActiveBanners(r.Context(), c.now()))
}

// Lookbook handles GET /catalog/lookbook?format=html|pdf
func (c *CatalogController) Lookbook(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}

	switch format {
	case "html":
		html, err := c.lookbook.RenderHTML(r.Context())
		if err != nil {
			writeError(w, c.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	case "pdf":
		pdf, err := c.lookbook.GeneratePDF(r.Context())
		if err != nil {
			writeError(w, c.logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="lookbook.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	default:
		writeError(w, c.logger, invalidf("invalid format %q. Valid formats: html, pdf", format))
	}
}
