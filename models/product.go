package models

// Product represents a catalog product. Products are supplied by the static
// catalog and are read-only for the rest of the application.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	OccasionTags    []string `json:"occasion_tags,omitempty"`
	Price           int64    `json:"price"`
	OfferPrice      *int64   `json:"offer_price,omitempty"`
	IsOnOffer       bool     `json:"is_on_offer"`
	Material        string   `json:"material"`
	SizesAvailable  []string `json:"sizes_available"`
	ColorsAvailable []string `json:"colors_available"`
	ImageURLs       []string `json:"image_urls"`
	StockQuantity   int      `json:"stock_quantity"`
	DateAdded       string   `json:"date_added,omitempty"`
	EventsRelated   []string `json:"events_related,omitempty"`
}

// PriceQuote is the display pricing of a single product
type PriceQuote struct {
	ProductID       string `json:"productId"`
	ListedPrice     int64  `json:"listedPrice"`
	UnitPrice       int64  `json:"unitPrice"`       // Effective unit price
	DiscountAmount  int64  `json:"discountAmount"`  // Never negative
	DiscountPercent int64  `json:"discountPercent"` // Whole percent of the listed price
	FabricOverride  bool   `json:"fabricOverride"`
	OnOffer         bool   `json:"onOffer"`
}
