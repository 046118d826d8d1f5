package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tribe-africa-store/models"
)

var (
	// ErrProductNotFound is returned when no catalog product has the given id
	ErrProductNotFound = errors.New("product not found")
	// ErrDesignNotFound is returned when no gallery design has the given id
	ErrDesignNotFound = errors.New("design not found")
)

const bannerDateLayout = "2006-01-02"

// ProductValidator reports data-integrity problems of a catalog product
type ProductValidator interface {
	ValidateProduct(p models.Product) error
}

// CatalogRepository serves the static catalog file. Products and banners are
// loaded once; designs grow as the gallery is synced.
type CatalogRepository struct {
	products []models.Product
	byID     map[string]int
	banners  []models.BannerCampaign

	mu      sync.RWMutex
	designs []models.Design
}

// NewCatalogRepository loads the catalog from a JSON file. Products failing
// validation are an error in strict mode and a warning otherwise.
func NewCatalogRepository(path string, validator ProductValidator, strict bool, logger *zap.Logger) (*CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog models.CatalogData
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	repo, err := NewCatalogRepositoryFromData(catalog, validator, strict, logger)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("catalog loaded",
			zap.String("path", path),
			zap.Int("products", len(repo.products)),
			zap.Int("designs", len(repo.designs)),
			zap.Int("banners", len(repo.banners)))
	}
	return repo, nil
}

// NewCatalogRepositoryFromData builds a repository from an already decoded catalog
func NewCatalogRepositoryFromData(catalog models.CatalogData, validator ProductValidator, strict bool, logger *zap.Logger) (*CatalogRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo := &CatalogRepository{
		products: catalog.Products,
		byID:     make(map[string]int, len(catalog.Products)),
		banners:  catalog.Banners,
	}

	for i, p := range catalog.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at position %d has no id", i)
		}
		if _, dup := repo.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		repo.byID[p.ID] = i

		if validator == nil {
			continue
		}
		if err := validator.ValidateProduct(p); err != nil {
			if strict {
				return nil, fmt.Errorf("invalid catalog: %w", err)
			}
			logger.Warn("catalog product has invalid pricing data", zap.String("product_id", p.ID), zap.Error(err))
		}
	}

	for _, b := range catalog.Banners {
		for _, date := range []string{b.StartDate, b.EndDate} {
			if date == "" {
				continue
			}
			if _, err := time.Parse(bannerDateLayout, date); err != nil {
				return nil, fmt.Errorf("banner %s: invalid date %q: %w", b.ID, date, err)
			}
		}
	}

	repo.AddDesigns(context.Background(), catalog.Designs)

	return repo, nil
}

var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// List returns the products in catalog order
func (r *CatalogRepository) List(_ context.Context) []models.Product {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// GetByID returns a copy of the product with the given id
func (r *CatalogRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return r.products[i], nil
}

// Designs returns the gallery designs whose name contains query
// (case-insensitive) and, unless category is empty or "All", whose design
// type equals category.
func (r *CatalogRepository) Designs(_ context.Context, query, category string) []models.Design {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)
	allCategories := category == "" || strings.EqualFold(category, "all")

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Design, 0, len(r.designs))
	for _, d := range r.designs {
		if query != "" && !strings.Contains(strings.ToLower(string(d.Name)), query) {
			continue
		}
		if !allCategories && !strings.EqualFold(string(d.Name), category) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// DesignByID returns the gallery design with the given id
func (r *CatalogRepository) DesignByID(_ context.Context, id string) (models.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.designs {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Design{}, fmt.Errorf("%w: %s", ErrDesignNotFound, id)
}

// AddDesigns adds gallery designs, replacing any design with the same id in
// place. Designs without an id are ignored. Returns the number of new designs.
func (r *CatalogRepository) AddDesigns(_ context.Context, designs []models.Design) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, d := range designs {
		if d.ID == "" {
			continue
		}
		if d.BasePrice == 0 {
			d.BasePrice = models.DesignPrices[d.Name]
		}
		if i := r.designIndex(d.ID); i >= 0 {
			r.designs[i] = d
			continue
		}
		r.designs = append(r.designs, d)
		added++
	}
	return added
}

func (r *CatalogRepository) designIndex(id string) int {
	for i, d := range r.designs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// ActiveBanners returns the active banners whose optional date window
// contains now, highest priority first. Both window bounds are inclusive.
func (r *CatalogRepository) ActiveBanners(_ context.Context, now time.Time) []models.BannerCampaign {
	today := now.Format(bannerDateLayout)

	out := make([]models.BannerCampaign, 0, len(r.banners))
	for _, b := range r.banners {
		if !b.IsActive {
			continue
		}
		// Dates are YYYY-MM-DD so they compare lexically
		if b.StartDate != "" && today < b.StartDate {
			continue
		}
		if b.EndDate != "" && today > b.EndDate {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}
