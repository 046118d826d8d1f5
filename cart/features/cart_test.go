package features

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"tribe-africa-store/cart"
	"tribe-africa-store/models"
	"tribe-africa-store/pricing"
	"tribe-africa-store/repository"
)

type cartTestContext struct {
	ctx      context.Context
	engine   *pricing.Engine
	products map[string]models.Product
	kv       *repository.MemoryStore
	repo     *repository.CartRepository
	store    *cart.Store
}

func (c *cartTestContext) reset() error {
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	if err != nil {
		return err
	}
	c.ctx = context.Background()
	c.engine = engine
	c.products = make(map[string]models.Product)
	c.kv = repository.NewMemoryStore()
	c.repo = repository.NewCartRepository(c.kv, "cart", nil)
	c.store = nil
	return nil
}

func (c *cartTestContext) theCatalogHasAProduct(id, name string, price int, material string) error {
	c.products[id] = models.Product{ID: id, Name: name, Price: int64(price), Material: material}
	return nil
}

func (c *cartTestContext) theCatalogHasAProductOnOffer(id, name string, price int, material string, offer int) error {
	offerPrice := int64(offer)
	c.products[id] = models.Product{
		ID: id, Name: name, Price: int64(price), Material: material,
		IsOnOffer: true, OfferPrice: &offerPrice,
	}
	return nil
}

func (c *cartTestContext) anEmptyCart() error {
	c.store = cart.NewStore(c.ctx, c.repo, c.engine, nil)
	return nil
}

func (c *cartTestContext) thePersistedCartContains(raw string) error {
	return c.kv.Set(c.ctx, "cart", raw)
}

func (c *cartTestContext) product(id string) (models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("unknown product %q", id)
	}
	return p, nil
}

func (c *cartTestContext) iAdd(qty int, id, size, color string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.store.AddItem(c.ctx, models.LineItem{Product: p, Size: size, Color: color, Quantity: qty})
	return nil
}

func (c *cartTestContext) iSetTheQuantity(id, size, color string, qty int) error {
	c.store.UpdateQuantity(c.ctx, models.LineKey{ProductID: id, Size: size, Color: color}, qty)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.store.Clear(c.ctx)
	return nil
}

func (c *cartTestContext) theCartIsReloaded() error {
	c.store = cart.NewStore(c.ctx, c.repo, c.engine, nil)
	return nil
}

func (c *cartTestContext) theCartTotalPriceIs(want int) error {
	if got := c.store.TotalPrice(); got != int64(want) {
		return fmt.Errorf("expected total price %d, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) theCartHasLineItems(want int) error {
	if got := len(c.store.Items()); got != want {
		return fmt.Errorf("expected %d line items, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) theCartHasItemsInTotal(want int) error {
	if got := c.store.TotalItems(); got != want {
		return fmt.Errorf("expected %d items in total, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) theLineHasQuantity(id, size, color string, want int) error {
	key := models.LineKey{ProductID: id, Size: size, Color: color}
	for _, item := range c.store.Items() {
		if item.Key() == key {
			if item.Quantity != want {
				return fmt.Errorf("expected quantity %d, got %d", want, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %+v", key)
}

func (c *cartTestContext) theEffectiveUnitPriceIs(id string, want int) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	if got := c.engine.EffectiveUnitPrice(p); got != int64(want) {
		return fmt.Errorf("expected effective unit price %d, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) theDiscountShownIs(id string, want int) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	if got := c.engine.DiscountAmount(p); got != int64(want) {
		return fmt.Errorf("expected discount %d, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) thePersistedCartIsEmpty() error {
	if loaded := c.repo.Load(c.ctx); !loaded.IsEmpty() {
		return fmt.Errorf("expected empty persisted cart, got %d line items", len(loaded.Items))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	// Given steps
	ctx.Step(`^the catalog has a product "([^"]*)" named "([^"]*)" priced (\d+) made of "([^"]*)"$`, tc.theCatalogHasAProduct)
	ctx.Step(`^the catalog has a product "([^"]*)" named "([^"]*)" priced (\d+) made of "([^"]*)" on offer at (\d+)$`, tc.theCatalogHasAProductOnOffer)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the persisted cart contains "([^"]*)"$`, tc.thePersistedCartContains)

	// When steps
	ctx.Step(`^I add (-?\d+) of product "([^"]*)" in size "([^"]*)" and color "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I set the quantity of product "([^"]*)" in size "([^"]*)" and color "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^the cart is reloaded from storage$`, tc.theCartIsReloaded)

	// Then steps
	ctx.Step(`^the cart total price is (\d+)$`, tc.theCartTotalPriceIs)
	ctx.Step(`^the cart has (\d+) line items?$`, tc.theCartHasLineItems)
	ctx.Step(`^the cart has (\d+) items in total$`, tc.theCartHasItemsInTotal)
	ctx.Step(`^the line for product "([^"]*)" in size "([^"]*)" and color "([^"]*)" has quantity (\d+)$`, tc.theLineHasQuantity)
	ctx.Step(`^the effective unit price of product "([^"]*)" is (\d+)$`, tc.theEffectiveUnitPriceIs)
	ctx.Step(`^the discount shown for product "([^"]*)" is (\d+)$`, tc.theDiscountShownIs)
	ctx.Step(`^the persisted cart is empty$`, tc.thePersistedCartIsEmpty)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
