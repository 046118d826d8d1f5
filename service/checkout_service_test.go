package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribe-africa-store/cart"
	"tribe-africa-store/models"
	"tribe-africa-store/pricing"
	"tribe-africa-store/repository"
)

type recordingOpener struct {
	opened []models.Handoff
	err    error
}

func (o *recordingOpener) Open(_ context.Context, h models.Handoff) error {
	o.opened = append(o.opened, h)
	return o.err
}

type checkoutFixture struct {
	service *CheckoutService
	store   *cart.Store
	repo    *repository.CartRepository
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	require.NoError(t, err)

	repo := repository.NewCartRepository(repository.NewMemoryStore(), "cart", nil)
	store := cart.NewStore(context.Background(), repo, engine, nil)
	svc := NewCheckoutService(DefaultHandoffConfig(), NewOrderFormatter(engine, "KES"), store, nil)
	svc.newID = func() string { return "handoff-1" }
	return checkoutFixture{service: svc, store: store, repo: repo}
}

func messageFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("text")
}

func TestBuildLink(t *testing.T) {
	f := newCheckoutFixture(t)
	link := f.service.BuildLink("Hi there & bye!")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/254727399983?text="))
	assert.Contains(t, link, "Hi%20there%20%26%20bye")
	assert.NotContains(t, link, "+")
	assert.Equal(t, "Hi there & bye!", messageFromLink(t, link))
}

func TestCheckoutCartClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.store.AddItem(ctx, models.LineItem{Product: kenteShirt, Size: "M", Quantity: 2})
	f.store.AddItem(ctx, models.LineItem{Product: ankaraFabric, Quantity: 1})
	items := f.store.Items()

	opener := &recordingOpener{}
	handoff, err := f.service.CheckoutCart(ctx, opener)
	require.NoError(t, err)

	assert.Equal(t, "handoff-1", handoff.ID)
	assert.Equal(t, models.OrderKindCart, handoff.Kind)
	require.Len(t, opener.opened, 1)
	assert.Equal(t, handoff, opener.opened[0])

	cfg := DefaultHandoffConfig()
	body := NewOrderFormatter(mustEngine(t), "KES").FormatCart(items)
	assert.Equal(t, cfg.OrderPrefix+body+cfg.OrderSuffix, handoff.Message)
	assert.Equal(t, handoff.Message, messageFromLink(t, handoff.Link))
	assert.Contains(t, handoff.Message, "💰 Total: KES 11,999")

	assert.Equal(t, 0, f.store.TotalItems())
	assert.True(t, f.repo.Load(ctx).IsEmpty())
}

func TestCheckoutCartEmpty(t *testing.T) {
	f := newCheckoutFixture(t)
	opener := &recordingOpener{}

	_, err := f.service.CheckoutCart(context.Background(), opener)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, opener.opened)
}

func TestCheckoutCartClearsEvenWhenOpenFails(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.store.AddItem(ctx, models.LineItem{Product: kenteShirt, Quantity: 1})

	handoff, err := f.service.CheckoutCart(ctx, &recordingOpener{err: errors.New("popup blocked")})
	require.NoError(t, err)
	assert.NotEmpty(t, handoff.Link)
	assert.Equal(t, 0, f.store.TotalItems())
}

func TestOrderProductLeavesCartAlone(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.store.AddItem(ctx, models.LineItem{Product: ankaraFabric, Quantity: 1})

	handoff, err := f.service.OrderProduct(ctx, models.LineItem{Product: kenteShirt, Quantity: 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderKindProduct, handoff.Kind)
	assert.Contains(t, handoff.Message, "🔢 Quantity: 1\n💰 Price: KES 5,000")
	assert.Equal(t, 1, f.store.TotalItems())
}

func TestOrderDesign(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	engine := mustEngine(t)

	sel := engine.DesignSelection("", "Earth Blue", 1999, models.Design{ID: "maxi-1", Name: models.DesignMaxiDress, BasePrice: 2500})
	handoff, err := f.service.OrderDesign(ctx, models.DesignOrder{Selection: sel, Quantity: 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.OrderKindDesign, handoff.Kind)
	assert.Contains(t, handoff.Message, "• Base Price: KES 2,500")
	assert.Contains(t, handoff.Message, "• Final Design Price: KES 2,000")
	assert.Contains(t, handoff.Message, "💰 Total Price: KES 11,997")
}

func TestConsultation(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, err := f.service.Consultation(ctx, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	handoff, err := f.service.Consultation(ctx, "Do you ship to Nairobi?", nil)
	require.NoError(t, err)
	cfg := DefaultHandoffConfig()
	assert.Equal(t, models.OrderKindConsultation, handoff.Kind)
	assert.Equal(t, cfg.ConsultationPrefix+"Do you ship to Nairobi?"+cfg.ConsultationSuffix, messageFromLink(t, handoff.Link))
}

func mustEngine(t *testing.T) *pricing.Engine {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	require.NoError(t, err)
	return engine
}
