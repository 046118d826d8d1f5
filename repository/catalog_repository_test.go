package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribe-africa-store/models"
)

type offerValidator struct{}

func (offerValidator) ValidateProduct(p models.Product) error {
	if p.IsOnOffer && p.OfferPrice == nil {
		return errors.New("missing offer price")
	}
	return nil
}

func testCatalog() models.CatalogData {
	return models.CatalogData{
		Products: []models.Product{
			{ID: "p1", Name: "Kente Shirt", Price: 5000},
			{ID: "p2", Name: "Ankara Fabric", Price: 3000, Material: "Fabric"},
		},
		Designs: []models.Design{
			{ID: "maxi", Name: models.DesignMaxiDress},
			{ID: "mini", Name: models.DesignMiniDress, BasePrice: 1800},
			{ID: "coat", Name: models.DesignCoat},
		},
		Banners: []models.BannerCampaign{
			{ID: "low", IsActive: true, Priority: 1},
			{ID: "off", IsActive: false, Priority: 9},
			{ID: "june", IsActive: true, Priority: 5, StartDate: "2024-06-01", EndDate: "2024-06-30"},
			{ID: "tie", IsActive: true, Priority: 1},
		},
	}
}

func TestCatalogRepositoryProducts(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCatalogRepositoryFromData(testCatalog(), offerValidator{}, true, nil)
	require.NoError(t, err)

	products := repo.List(ctx)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)

	p, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Ankara Fabric", p.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogRepositoryValidation(t *testing.T) {
	bad := testCatalog()
	bad.Products = append(bad.Products, models.Product{ID: "p3", Price: 100, IsOnOffer: true})

	_, err := NewCatalogRepositoryFromData(bad, offerValidator{}, true, nil)
	assert.Error(t, err)

	repo, err := NewCatalogRepositoryFromData(bad, offerValidator{}, false, nil)
	require.NoError(t, err)
	assert.Len(t, repo.List(context.Background()), 3)

	dup := testCatalog()
	dup.Products = append(dup.Products, models.Product{ID: "p1"})
	_, err = NewCatalogRepositoryFromData(dup, nil, false, nil)
	assert.Error(t, err)

	badDate := testCatalog()
	badDate.Banners[0].EndDate = "30/06/2024"
	_, err = NewCatalogRepositoryFromData(badDate, nil, false, nil)
	assert.Error(t, err)
}

func TestCatalogRepositoryDesigns(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCatalogRepositoryFromData(testCatalog(), nil, false, nil)
	require.NoError(t, err)

	assert.Len(t, repo.Designs(ctx, "", ""), 3)
	assert.Len(t, repo.Designs(ctx, "", "All"), 3)
	assert.Len(t, repo.Designs(ctx, "DRESS", ""), 2)

	coats := repo.Designs(ctx, "", "coat")
	require.Len(t, coats, 1)
	assert.Equal(t, "coat", coats[0].ID)
	assert.Equal(t, int64(3000), coats[0].BasePrice, "base price filled from the design price table")

	assert.Empty(t, repo.Designs(ctx, "mini", "Coat"))

	mini, err := repo.DesignByID(ctx, "mini")
	require.NoError(t, err)
	assert.Equal(t, int64(1800), mini.BasePrice)

	_, err = repo.DesignByID(ctx, "cape")
	assert.ErrorIs(t, err, ErrDesignNotFound)
}

func TestCatalogRepositoryAddDesigns(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCatalogRepositoryFromData(testCatalog(), nil, false, nil)
	require.NoError(t, err)

	added := repo.AddDesigns(ctx, []models.Design{
		{ID: "earth-blue-maxi-dress", Name: models.DesignMaxiDress, ImageURL: "/gallery/earth-blue-maxi-dress.jpg"},
		{ID: "coat", Name: models.DesignCoat, ImageURL: "/gallery/coat.jpg"},
		{Name: models.DesignCoat},
	})
	assert.Equal(t, 1, added)
	assert.Len(t, repo.Designs(ctx, "", ""), 4)

	synced, err := repo.DesignByID(ctx, "earth-blue-maxi-dress")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), synced.BasePrice)

	coat, err := repo.DesignByID(ctx, "coat")
	require.NoError(t, err)
	assert.Equal(t, "/gallery/coat.jpg", coat.ImageURL, "existing design replaced in place")
	assert.Equal(t, "coat", repo.Designs(ctx, "", "")[2].ID)
}

func TestCatalogRepositoryActiveBanners(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCatalogRepositoryFromData(testCatalog(), nil, false, nil)
	require.NoError(t, err)

	ids := func(banners []models.BannerCampaign) []string {
		out := make([]string, 0, len(banners))
		for _, b := range banners {
			out = append(out, b.ID)
		}
		return out
	}

	inJune := time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"june", "low", "tie"}, ids(repo.ActiveBanners(ctx, inJune)))

	inJuly := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"low", "tie"}, ids(repo.ActiveBanners(ctx, inJuly)))
}

func TestNewCatalogRepositoryFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products":[{"id":"p1","name":"Shirt","price":100}],"designs":[],"banners":[]}`), 0o600))

	repo, err := NewCatalogRepository(path, nil, true, nil)
	require.NoError(t, err)
	assert.Len(t, repo.List(context.Background()), 1)

	_, err = NewCatalogRepository(filepath.Join(dir, "missing.json"), nil, true, nil)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))
	_, err = NewCatalogRepository(path, nil, true, nil)
	assert.Error(t, err)
}
