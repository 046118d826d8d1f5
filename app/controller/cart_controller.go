package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tribe-africa-store/models"
	"tribe-africa-store/repository"
	"tribe-africa-store/utils"
)

// CartStore is the cart the controllers act on
type CartStore interface {
	AddItem(ctx context.Context, item models.LineItem)
	RemoveItem(ctx context.Context, key models.LineKey)
	UpdateQuantity(ctx context.Context, key models.LineKey, quantity int)
	Clear(ctx context.Context)
	View() models.CartView
}

// LineRequest selects a product line, as sent by the UI
type LineRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// CartController handles HTTP requests for the shopping cart
type CartController struct {
	cart    CartStore
	catalog repository.CatalogRepositoryInterface
	logger  *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(cart CartStore, catalog repository.CatalogRepositoryInterface, logger *zap.Logger) *CartController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartController{cart: cart, catalog: catalog, logger: logger}
}

// GetCart handles GET /cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.logger, http.StatusOK, c.cart.View())
}

// AddItem handles POST /cart/items
// The product is copied from the catalog into the line item
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req LineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, c.logger, err)
		return
	}

	item, err := resolveLine(r.Context(), c.catalog, req)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	c.cart.AddItem(r.Context(), item)
	c.logger.Info("cart item added",
		zap.String("product_id", item.Product.ID),
		zap.String("size", item.Size),
		zap.String("color", item.Color),
		zap.Int("quantity", item.Quantity))
	writeJSON(w, c.logger, http.StatusOK, c.cart.View())
}

// UpdateQuantity handles PATCH /cart/items
// A quantity below 1 removes the line
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req LineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, c.logger, err)
		return
	}
	key, err := resolveKey(r.Context(), c.catalog, req)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	c.cart.UpdateQuantity(r.Context(), key, req.Quantity)
	writeJSON(w, c.logger, http.StatusOK, c.cart.View())
}

// RemoveItem handles DELETE /cart/items?productId=&size=&color=
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := LineRequest{ProductID: q.Get("productId"), Size: q.Get("size"), Color: q.Get("color")}
	key, err := resolveKey(r.Context(), c.catalog, req)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	c.cart.RemoveItem(r.Context(), key)
	writeJSON(w, c.logger, http.StatusOK, c.cart.View())
}

// Clear handles DELETE /cart
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c.cart.Clear(r.Context())
	c.logger.Info("cart cleared")
	writeJSON(w, c.logger, http.StatusOK, c.cart.View())
}

// resolveLine looks the product up in the catalog and maps size and color to
// the spelling the product lists them with
func resolveLine(ctx context.Context, catalog repository.CatalogRepositoryInterface, req LineRequest) (models.LineItem, error) {
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		return models.LineItem{}, invalidf("productId is required")
	}

	product, err := catalog.GetByID(ctx, id)
	if err != nil {
		return models.LineItem{}, err
	}

	size, color, err := matchVariant(product, req)
	if err != nil {
		return models.LineItem{}, err
	}
	return models.LineItem{Product: product, Size: size, Color: color, Quantity: req.Quantity}, nil
}

// resolveKey builds the key of an existing line with the same spelling rules
// as resolveLine. A product gone from the catalog keeps its key as sent, so
// its lines can still be changed or removed.
func resolveKey(ctx context.Context, catalog repository.CatalogRepositoryInterface, req LineRequest) (models.LineKey, error) {
	key := models.LineKey{
		ProductID: strings.TrimSpace(req.ProductID),
		Size:      strings.TrimSpace(req.Size),
		Color:     strings.TrimSpace(req.Color),
	}
	if key.ProductID == "" {
		return models.LineKey{}, invalidf("productId is required")
	}

	product, err := catalog.GetByID(ctx, key.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return key, nil
	}
	if err != nil {
		return models.LineKey{}, err
	}

	if key.Size, key.Color, err = matchVariant(product, req); err != nil {
		return models.LineKey{}, err
	}
	return key, nil
}

func matchVariant(product models.Product, req LineRequest) (size, color string, err error) {
	size, ok := utils.MatchSize(product.SizesAvailable, req.Size)
	if !ok {
		return "", "", invalidf("size %q is not available for %s", req.Size, product.Name)
	}
	color, ok = utils.MatchColor(product.ColorsAvailable, req.Color)
	if !ok {
		return "", "", invalidf("color %q is not available for %s", req.Color, product.Name)
	}
	return size, color, nil
}
