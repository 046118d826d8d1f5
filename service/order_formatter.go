package service

import (
	"fmt"
	"strings"

	"tribe-africa-store/models"
	"tribe-africa-store/utils"
)

// Pricer is the subset of the pricing engine the formatter needs
type Pricer interface {
	EffectiveUnitPrice(p models.Product) int64
	DiscountAmount(p models.Product) int64
	DiscountPercent(p models.Product) int64
}

// OrderFormatter renders orders into the plain-text body of a chat message.
// Output is deterministic and follows the order of the input items.
type OrderFormatter struct {
	pricer   Pricer
	currency string
}

// NewOrderFormatter creates a new OrderFormatter. currency is the label
// prefixed to every amount, "KES" when empty.
func NewOrderFormatter(pricer Pricer, currency string) *OrderFormatter {
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	return &OrderFormatter{pricer: pricer, currency: currency}
}

// Format renders any order variant
func (f *OrderFormatter) Format(order models.Order) (string, error) {
	switch o := order.(type) {
	case models.CartOrder:
		return f.FormatCart(o.Items), nil
	case *models.CartOrder:
		return f.FormatCart(o.Items), nil
	case models.SingleProductOrder:
		return f.FormatProduct(o.Item), nil
	case *models.SingleProductOrder:
		return f.FormatProduct(o.Item), nil
	case models.DesignOrder:
		return f.FormatDesign(o), nil
	case *models.DesignOrder:
		return f.FormatDesign(*o), nil
	default:
		return "", fmt.Errorf("unsupported order type %T", order)
	}
}

// FormatCart renders one block per line item followed by the grand total
func (f *OrderFormatter) FormatCart(items []models.LineItem) string {
	blocks := make([]string, 0, len(items)+1)
	var total int64
	for _, item := range items {
		unit := f.pricer.EffectiveUnitPrice(item.Product)
		subtotal := unit * int64(item.Quantity)
		total += subtotal

		var b strings.Builder
		fmt.Fprintf(&b, "🧵 Product: %s\n", item.Product.Name)
		writeOptional(&b, "📏 Size", item.Size)
		writeOptional(&b, "🎨 Color", item.Color)
		fmt.Fprintf(&b, "🔢 Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "💰 Unit Price: %s\n", f.money(unit))
		if discount := f.pricer.DiscountAmount(item.Product); discount > 0 {
			fmt.Fprintf(&b, "🏷️ Discount: %s (%d%% off)\n", f.money(discount), f.pricer.DiscountPercent(item.Product))
		}
		fmt.Fprintf(&b, "🧾 Subtotal: %s", f.money(subtotal))
		blocks = append(blocks, b.String())
	}
	blocks = append(blocks, "💰 Total: "+f.money(total))
	return strings.Join(blocks, "\n\n")
}

// FormatProduct renders a single "buy now" line item
func (f *OrderFormatter) FormatProduct(item models.LineItem) string {
	unit := f.pricer.EffectiveUnitPrice(item.Product)

	var b strings.Builder
	fmt.Fprintf(&b, "🧵 Product: %s\n", item.Product.Name)
	writeOptional(&b, "📏 Size", item.Size)
	writeOptional(&b, "🎨 Color", item.Color)
	fmt.Fprintf(&b, "🔢 Quantity: %d\n", item.Quantity)
	fmt.Fprintf(&b, "💰 Price: %s", f.money(unit*int64(item.Quantity)))
	return b.String()
}

// FormatDesign renders a fabric and design selection with its per-unit and
// quantity-scaled totals
func (f *OrderFormatter) FormatDesign(order models.DesignOrder) string {
	sel := order.Selection
	quantity := order.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var b strings.Builder
	b.WriteString("🧵 Fabric Order with Design\n\n")
	b.WriteString("👕 Fabric Details:\n")
	fmt.Fprintf(&b, "• Name: %s\n", sel.FabricName)
	fmt.Fprintf(&b, "• Price: %s\n\n", f.money(sel.FabricPrice))
	b.WriteString("✂️ Design Details:\n")
	fmt.Fprintf(&b, "• Style: %s\n", sel.Design.Name)
	fmt.Fprintf(&b, "• Base Price: %s\n", f.money(sel.Design.BasePrice))
	fmt.Fprintf(&b, "• Discount: -%d%% (%s)\n", sel.DesignDiscountPercent, f.money(sel.DesignDiscount))
	fmt.Fprintf(&b, "• Final Design Price: %s\n", f.money(sel.DiscountedDesignPrice))
	writeOptional(&b, "📏 Size", order.Size)
	writeOptional(&b, "🎨 Color", order.Color)
	fmt.Fprintf(&b, "🔢 Quantity: %d\n", quantity)
	fmt.Fprintf(&b, "💵 Price per unit: %s\n\n", f.money(sel.TotalPrice))
	fmt.Fprintf(&b, "💰 Total Price: %s", f.money(sel.TotalPrice*int64(quantity)))
	return b.String()
}

func (f *OrderFormatter) money(amount int64) string {
	return utils.FormatMoney(f.currency, amount)
}

func writeOptional(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
