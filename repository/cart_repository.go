package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tribe-africa-store/models"
)

// DefaultCartKey is the storage key the cart is saved under
const DefaultCartKey = "cart"

// CartRepository serializes the cart under a single key of a KeyValueStore.
// The stored value is a JSON array of line items with the full product
// nested in each entry.
type CartRepository struct {
	store  KeyValueStore
	key    string
	logger *zap.Logger
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(store KeyValueStore, key string, logger *zap.Logger) *CartRepository {
	if key == "" {
		key = DefaultCartKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartRepository{store: store, key: key, logger: logger}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// Load reads the persisted cart. Missing, unreadable or malformed data yields
// an empty cart.
func (r *CartRepository) Load(ctx context.Context) models.Cart {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		r.logger.Warn("failed to read persisted cart, starting empty", zap.String("key", r.key), zap.Error(err))
		return models.Cart{}
	}
	if !ok || raw == "" {
		return models.Cart{}
	}

	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("malformed persisted cart, starting empty", zap.String("key", r.key), zap.Error(err))
		return models.Cart{}
	}

	return models.Cart{Items: normalize(items)}
}

// Save overwrites the persisted cart
func (r *CartRepository) Save(ctx context.Context, cart models.Cart) error {
	items := cart.Items
	if items == nil {
		items = []models.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to write cart under %q: %w", r.key, err)
	}
	return nil
}

// normalize restores the cart invariants on hand-edited or stale data:
// entries without a product id or with a non-positive quantity are dropped and
// duplicate keys are merged into the first occurrence.
func normalize(items []models.LineItem) []models.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]models.LineItem, 0, len(items))
	index := make(map[models.LineKey]int, len(items))
	for _, item := range items {
		if item.Product.ID == "" || item.Quantity < 1 {
			continue
		}
		if i, ok := index[item.Key()]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
