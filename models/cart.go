package models

// LineKey identifies a line item in the cart. Two line items with the same
// product but a different size or color are distinct.
type LineKey struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// LineItem represents one product/size/color/quantity entry in the cart.
// The product is value-copied so the persisted cart is self-contained.
type LineItem struct {
	Product  Product `json:"product"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
	Quantity int     `json:"quantity"`
}

// Key returns the identity of the line item
func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.Product.ID, Size: li.Size, Color: li.Color}
}

// Cart is an ordered sequence of line items
type Cart struct {
	Items []LineItem `json:"items"`
}

// IsEmpty reports whether the cart has no line items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartLineView is a priced line item as shown to the UI layer
type CartLineView struct {
	LineItem
	UnitPrice      int64 `json:"unitPrice"`
	DiscountAmount int64 `json:"discountAmount"`
	Subtotal       int64 `json:"subtotal"`
}

// CartView is the priced cart returned by GET /cart
type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice int64          `json:"totalPrice"`
}
