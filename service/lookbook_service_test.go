package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribe-africa-store/models"
)

type staticCatalog []models.Product

func (c staticCatalog) List(context.Context) []models.Product { return c }

func TestLookbookItems(t *testing.T) {
	offer := int64(5200)
	catalog := staticCatalog{
		{ID: "a", Name: "Kente Shirt", Price: 5000, Material: "Cotton", SizesAvailable: []string{"M", "L"}, ImageURLs: []string{"/gallery/a.jpg"}},
		{ID: "b", Name: "Ankara Fabric", Price: 3000, Material: "Fabric", ImageURLs: []string{"https://cdn.example.com/b.jpg"}},
		{ID: "c", Name: "Wrap Dress", Price: 6500, OfferPrice: &offer, IsOnOffer: true},
	}
	s := NewLookbookService(catalog, mustEngine(t), "KES", "Tribe Africa", "http://localhost:8080/", "", nil)

	items := s.Items(context.Background())
	require.Len(t, items, 3)

	assert.Equal(t, "KES 5,000", items[0].Price)
	assert.False(t, items[0].Discount)
	assert.Equal(t, "M, L", items[0].Sizes)
	assert.Equal(t, "http://localhost:8080/gallery/a.jpg", items[0].ImageURL)

	assert.Equal(t, "KES 1,999", items[1].Price)
	assert.Equal(t, "KES 3,000", items[1].ListedPrice)
	assert.True(t, items[1].Discount)
	assert.Equal(t, "https://cdn.example.com/b.jpg", items[1].ImageURL)

	assert.Equal(t, "KES 5,200", items[2].Price)
	assert.Equal(t, int64(20), items[2].DiscountPercent)
	assert.Empty(t, items[2].ImageURL)
}

func TestLookbookRenderHTMLPaginates(t *testing.T) {
	var catalog staticCatalog
	for i := 0; i < 10; i++ {
		catalog = append(catalog, models.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("Product %d", i), Price: 1000})
	}
	s := NewLookbookService(catalog, mustEngine(t), "KES", "Tribe Africa", "http://localhost:8080", "", nil)

	html, err := s.RenderHTML(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(html, `<section class="page">`))
	assert.Contains(t, html, "Tribe Africa · Page 1 of 2")
	assert.Contains(t, html, "Tribe Africa · Page 2 of 2")
	assert.Contains(t, html, "Product 9")
	assert.Contains(t, html, "KES 1,000")
}

func TestPaginate(t *testing.T) {
	assert.Nil(t, paginate([]int{}, 9))
	pages := paginate([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, pages)
}
