package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"tribe-africa-store/models"
	"tribe-africa-store/utils"
)

const itemsPerLookbookPage = 9

//go:embed templates/lookbook.html
var lookbookTemplate string

var lookbookTmpl = template.Must(template.New("lookbook").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(lookbookTemplate))

// ProductLister lists the catalog products in order
type ProductLister interface {
	List(ctx context.Context) []models.Product
}

// Quoter prices a product for display
type Quoter interface {
	Quote(p models.Product) models.PriceQuote
}

// LookbookItem is one product as printed in the lookbook
type LookbookItem struct {
	ID              string
	Name            string
	ImageURL        string
	Price           string
	ListedPrice     string
	Discount        bool
	DiscountPercent int64
	Sizes           string
	Colors          string
}

// LookbookService renders the catalog with effective prices as HTML and
// prints it to PDF with headless Chrome
type LookbookService struct {
	catalog      ProductLister
	quoter       Quoter
	currency     string
	businessName string
	baseURL      string // Where this service serves GET /catalog/lookbook
	chromePath   string
	logger       *zap.Logger
}

// NewLookbookService creates a new LookbookService
func NewLookbookService(catalog ProductLister, quoter Quoter, currency, businessName, baseURL, chromePath string, logger *zap.Logger) *LookbookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookbookService{
		catalog:      catalog,
		quoter:       quoter,
		currency:     currency,
		businessName: businessName,
		baseURL:      strings.TrimRight(baseURL, "/"),
		chromePath:   chromePath,
		logger:       logger,
	}
}

// Items returns the priced lookbook entries in catalog order
func (s *LookbookService) Items(ctx context.Context) []LookbookItem {
	products := s.catalog.List(ctx)
	items := make([]LookbookItem, 0, len(products))
	for _, p := range products {
		q := s.quoter.Quote(p)
		item := LookbookItem{
			ID:              p.ID,
			Name:            p.Name,
			Price:           utils.FormatMoney(s.currency, q.UnitPrice),
			ListedPrice:     utils.FormatMoney(s.currency, q.ListedPrice),
			Discount:        q.DiscountAmount > 0,
			DiscountPercent: q.DiscountPercent,
			Sizes:           strings.Join(p.SizesAvailable, ", "),
			Colors:          strings.Join(p.ColorsAvailable, ", "),
		}
		if len(p.ImageURLs) > 0 {
			item.ImageURL = s.absoluteURL(p.ImageURLs[0])
		}
		items = append(items, item)
	}
	return items
}

// RenderHTML renders the lookbook, nine products per page
func (s *LookbookService) RenderHTML(ctx context.Context) (string, error) {
	data := struct {
		BusinessName string
		Pages        [][]LookbookItem
	}{
		BusinessName: s.businessName,
		Pages:        paginate(s.Items(ctx), itemsPerLookbookPage),
	}

	var buf bytes.Buffer
	if err := lookbookTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute lookbook template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF loads the HTML lookbook from this service in headless Chrome
// and prints it to A4 pages
func (s *LookbookService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		s.logger.Warn("no Chrome executable found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/catalog/lookbook?format=html"
	s.logger.Info("printing lookbook", zap.String("url", renderURL))

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and images, giving up on an image after 5s
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				...Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const t = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(t); resolve(); };
				}))
			]);
		`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.logger.Info("lookbook printed", zap.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}

func (s *LookbookService) absoluteURL(ref string) string {
	if strings.HasPrefix(ref, "/") {
		return s.baseURL + ref
	}
	return ref
}

// detectChromePath returns configured when it exists, otherwise the first
// common Chrome/Chromium installation found
func detectChromePath(configured string) string {
	paths := []string{
		configured,
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func paginate[T any](items []T, perPage int) [][]T {
	var pages [][]T
	for i := 0; i < len(items); i += perPage {
		end := i + perPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}
