package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tribe-africa-store/models"
)

// Pricer resolves the price charged per unit of a product
type Pricer interface {
	EffectiveUnitPrice(p models.Product) int64
	DiscountAmount(p models.Product) int64
}

// Repository persists the cart between process runs
type Repository interface {
	Load(ctx context.Context) models.Cart
	Save(ctx context.Context, cart models.Cart) error
}

// Store owns the authoritative in-memory cart. Every mutation is followed by
// a synchronous save; a failed save is logged and the in-memory cart stays
// authoritative.
type Store struct {
	mu     sync.Mutex
	items  []models.LineItem
	repo   Repository
	pricer Pricer
	logger *zap.Logger
}

// NewStore creates a cart store hydrated from the repository
func NewStore(ctx context.Context, repo Repository, pricer Pricer, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{repo: repo, pricer: pricer, logger: logger}
	if repo != nil {
		s.items = repo.Load(ctx).Items
	}
	logger.Info("cart hydrated", zap.Int("line_items", len(s.items)))
	return s
}

// AddItem merges the item into an existing line with the same key or appends
// it. Quantities below 1 are clamped to 1.
func (s *Store) AddItem(ctx context.Context, item models.LineItem) {
	if item.Quantity < 1 {
		s.logger.Warn("clamping add quantity to 1",
			zap.String("product_id", item.Product.ID), zap.Int("quantity", item.Quantity))
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.Key()); i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	s.sync(ctx)
}

// RemoveItem removes the line matching key. Absent keys are a no-op.
func (s *Store) RemoveItem(ctx context.Context, key models.LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(ctx, key)
}

// UpdateQuantity replaces the quantity of the line in place. A quantity below
// 1 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, key models.LineKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.remove(ctx, key)
		return
	}
	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.items[i].Quantity = quantity
	s.sync(ctx)
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.sync(ctx)
}

// Checkout hands a copy of the line items to handoff and then clears the
// cart, whatever handoff did. It returns false without calling handoff when
// the cart is empty. handoff runs under the store lock and must not call
// back into the store.
func (s *Store) Checkout(ctx context.Context, handoff func(items []models.LineItem)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return false
	}
	handoff(s.copyItems())
	s.items = nil
	s.sync(ctx)
	return true
}

// Items returns a copy of the line items in cart order
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Snapshot returns the cart as a value
func (s *Store) Snapshot() models.Cart {
	return models.Cart{Items: s.Items()}
}

// TotalItems returns the sum of all quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of effective unit price times quantity
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPrice(s.pricer, s.items)
}

// View returns the priced cart for display
func (s *Store) View() models.CartView {
	items := s.Items()

	view := models.CartView{Items: make([]models.CartLineView, 0, len(items))}
	for _, item := range items {
		unit := s.pricer.EffectiveUnitPrice(item.Product)
		view.Items = append(view.Items, models.CartLineView{
			LineItem:       item,
			UnitPrice:      unit,
			DiscountAmount: s.pricer.DiscountAmount(item.Product),
			Subtotal:       unit * int64(item.Quantity),
		})
		view.TotalItems += item.Quantity
		view.TotalPrice += unit * int64(item.Quantity)
	}
	return view
}

// TotalPrice prices a list of line items from scratch
func TotalPrice(pricer Pricer, items []models.LineItem) int64 {
	var total int64
	for _, item := range items {
		total += pricer.EffectiveUnitPrice(item.Product) * int64(item.Quantity)
	}
	return total
}

func (s *Store) remove(ctx context.Context, key models.LineKey) {
	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.sync(ctx)
}

func (s *Store) indexOf(key models.LineKey) int {
	for i, item := range s.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) copyItems() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// sync must be called with mu held
func (s *Store) sync(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, models.Cart{Items: s.copyItems()}); err != nil {
		s.logger.Error("failed to persist cart", zap.Error(err), zap.Int("line_items", len(s.items)))
	}
}
