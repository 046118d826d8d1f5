package models

// OrderKind tags what a handoff carries
type OrderKind string

const (
	OrderKindCart    OrderKind = "cart"
	OrderKindProduct OrderKind = "product"
	OrderKindDesign  OrderKind = "design"

	// OrderKindConsultation tags a free-text enquiry handoff, which is not an Order
	OrderKindConsultation OrderKind = "consultation"
)

// Order is implemented by CartOrder, SingleProductOrder and DesignOrder only
type Order interface {
	Kind() OrderKind
	isOrder()
}

// CartOrder is the whole cart at checkout time
type CartOrder struct {
	Items []LineItem
}

// SingleProductOrder is a "buy now" order for one product
type SingleProductOrder struct {
	Item LineItem
}

// DesignOrder is a design selection with the size, color and quantity picked
// in the order summary
type DesignOrder struct {
	Selection DesignSelection
	Size      string
	Color     string
	Quantity  int
}

func (CartOrder) Kind() OrderKind          { return OrderKindCart }
func (SingleProductOrder) Kind() OrderKind { return OrderKindProduct }
func (DesignOrder) Kind() OrderKind        { return OrderKindDesign }

func (CartOrder) isOrder()          {}
func (SingleProductOrder) isOrder() {}
func (DesignOrder) isOrder()        {}

// Handoff is the result of opening an external checkout link
type Handoff struct {
	ID      string    `json:"id"`
	Kind    OrderKind `json:"kind"`
	Link    string    `json:"link"`
	Message string    `json:"message"`
}
