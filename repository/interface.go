package repository

import (
	"context"
	"time"

	"tribe-africa-store/models"
)

// KeyValueStore is a string-keyed store holding one serialized value per key
type KeyValueStore interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// CartRepositoryInterface defines the contract for cart persistence
type CartRepositoryInterface interface {
	Load(ctx context.Context) models.Cart
	Save(ctx context.Context, cart models.Cart) error
}

// CatalogRepositoryInterface defines the contract for the static product catalog
type CatalogRepositoryInterface interface {
	List(ctx context.Context) []models.Product
	GetByID(ctx context.Context, id string) (models.Product, error)
	Designs(ctx context.Context, query, category string) []models.Design
	DesignByID(ctx context.Context, id string) (models.Design, error)
	AddDesigns(ctx context.Context, designs []models.Design) int
	ActiveBanners(ctx context.Context, now time.Time) []models.BannerCampaign
}
