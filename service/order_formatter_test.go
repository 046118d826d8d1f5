package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribe-africa-store/models"
	"tribe-africa-store/pricing"
)

var (
	kenteShirt   = models.Product{ID: "kente", Name: "Kente Shirt", Price: 5000, Material: "Cotton"}
	ankaraFabric = models.Product{ID: "ankara", Name: "Ankara Fabric", Price: 3000, Material: "Fabric"}
)

func newTestFormatter(t *testing.T) *OrderFormatter {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	require.NoError(t, err)
	return NewOrderFormatter(engine, "")
}

func TestFormatCart(t *testing.T) {
	f := newTestFormatter(t)

	got := f.FormatCart([]models.LineItem{
		{Product: kenteShirt, Size: "M", Color: "Gold", Quantity: 2},
		{Product: ankaraFabric, Quantity: 1},
	})

	want := "🧵 Product: Kente Shirt\n" +
		"📏 Size: M\n" +
		"🎨 Color: Gold\n" +
		"🔢 Quantity: 2\n" +
		"💰 Unit Price: KES 5,000\n" +
		"🧾 Subtotal: KES 10,000\n" +
		"\n" +
		"🧵 Product: Ankara Fabric\n" +
		"🔢 Quantity: 1\n" +
		"💰 Unit Price: KES 1,999\n" +
		"🏷️ Discount: KES 1,001 (33% off)\n" +
		"🧾 Subtotal: KES 1,999\n" +
		"\n" +
		"💰 Total: KES 11,999"
	assert.Equal(t, want, got)
}

func TestFormatCartEmpty(t *testing.T) {
	f := newTestFormatter(t)
	assert.Equal(t, "💰 Total: KES 0", f.FormatCart(nil))
}

func TestFormatProduct(t *testing.T) {
	f := newTestFormatter(t)
	got := f.FormatProduct(models.LineItem{Product: kenteShirt, Color: "Green", Quantity: 3})
	assert.Equal(t, "🧵 Product: Kente Shirt\n🎨 Color: Green\n🔢 Quantity: 3\n💰 Price: KES 15,000", got)
}

func TestFormatDesign(t *testing.T) {
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	require.NoError(t, err)
	f := NewOrderFormatter(engine, "KES")

	sel := engine.DesignSelection("fab-1", "Earth Blue", 1500, models.Design{ID: "maxi-1", Name: models.DesignMaxiDress, BasePrice: 2500})
	got := f.FormatDesign(models.DesignOrder{Selection: sel, Size: "L", Quantity: 2})

	assert.Contains(t, got, "• Name: Earth Blue\n• Price: KES 1,500\n")
	assert.Contains(t, got, "• Style: Maxi Dress\n")
	assert.Contains(t, got, "• Base Price: KES 2,500\n")
	assert.Contains(t, got, "• Discount: -20% (KES 500)\n")
	assert.Contains(t, got, "• Final Design Price: KES 2,000\n")
	assert.Contains(t, got, "📏 Size: L\n")
	assert.NotContains(t, got, "Color")
	assert.Contains(t, got, "💵 Price per unit: KES 3,500\n")
	assert.True(t, strings.HasSuffix(got, "💰 Total Price: KES 7,000"))
}

func TestFormatDispatchesOnKind(t *testing.T) {
	f := newTestFormatter(t)
	item := models.LineItem{Product: kenteShirt, Quantity: 1}

	cart, err := f.Format(models.CartOrder{Items: []models.LineItem{item}})
	require.NoError(t, err)
	assert.Equal(t, f.FormatCart([]models.LineItem{item}), cart)

	single, err := f.Format(&models.SingleProductOrder{Item: item})
	require.NoError(t, err)
	assert.Equal(t, f.FormatProduct(item), single)

	design := models.DesignOrder{Selection: models.DesignSelection{FabricName: "Plain"}, Quantity: 0}
	text, err := f.Format(design)
	require.NoError(t, err)
	assert.Contains(t, text, "🔢 Quantity: 1\n", "quantity defaults to one unit")

	_, err = f.Format(nil)
	assert.Error(t, err)
}
