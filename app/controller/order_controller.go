package controller

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tribe-africa-store/models"
	"tribe-africa-store/repository"
	"tribe-africa-store/service"
)

// Checkout hands orders off to the external chat
type Checkout interface {
	CheckoutCart(ctx context.Context, opener service.Opener) (models.Handoff, error)
	OrderProduct(ctx context.Context, item models.LineItem, opener service.Opener) (models.Handoff, error)
	OrderDesign(ctx context.Context, order models.DesignOrder, opener service.Opener) (models.Handoff, error)
	Consultation(ctx context.Context, message string, opener service.Opener) (models.Handoff, error)
}

// DesignPricer prices a fabric and design combination
type DesignPricer interface {
	DesignSelection(fabricID, fabricName string, fabricPrice int64, design models.Design) models.DesignSelection
	FabricSelection(fabric models.Product, design models.Design) models.DesignSelection
}

// DesignOrderRequest is the body of POST /orders/design. Either FabricID names
// a catalog product or FabricName and FabricPrice describe the fabric.
type DesignOrderRequest struct {
	FabricID    string `json:"fabricId"`
	FabricName  string `json:"fabricName"`
	FabricPrice int64  `json:"fabricPrice"`
	DesignID    string `json:"designId"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
}

// ConsultationRequest is the body of POST /consultation
type ConsultationRequest struct {
	Message string `json:"message"`
}

// OrderController handles the checkout handoffs
type OrderController struct {
	checkout Checkout
	catalog  repository.CatalogRepositoryInterface
	pricer   DesignPricer
	logger   *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(checkout Checkout, catalog repository.CatalogRepositoryInterface, pricer DesignPricer, logger *zap.Logger) *OrderController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderController{checkout: checkout, catalog: catalog, pricer: pricer, logger: logger}
}

// CheckoutCart handles POST /cart/checkout
// With ?redirect=1 the browser is sent straight to the chat link
func (c *OrderController) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	opener := newHTTPOpener(w, r)
	handoff, err := c.checkout.CheckoutCart(r.Context(), opener)
	c.respond(w, opener, handoff, err)
}

// OrderProduct handles POST /orders/product
func (c *OrderController) OrderProduct(w http.ResponseWriter, r *http.Request) {
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

	opener := newHTTPOpener(w, r)
	handoff, err := c.checkout.OrderProduct(r.Context(), item, opener)
	c.respond(w, opener, handoff, err)
}

// OrderDesign handles POST /orders/design
func (c *OrderController) OrderDesign(w http.ResponseWriter, r *http.Request) {
	var req DesignOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, c.logger, err)
		return
	}
	if strings.TrimSpace(req.DesignID) == "" {
		writeError(w, c.logger, invalidf("designId is required"))
		return
	}

	ctx := r.Context()
	design, err := c.catalog.DesignByID(ctx, strings.TrimSpace(req.DesignID))
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	var selection models.DesignSelection
	if fabricID := strings.TrimSpace(req.FabricID); fabricID != "" {
		fabric, err := c.catalog.GetByID(ctx, fabricID)
		if err != nil {
			writeError(w, c.logger, err)
			return
		}
		selection = c.pricer.FabricSelection(fabric, design)
	} else {
		name := strings.TrimSpace(req.FabricName)
		if name == "" || req.FabricPrice <= 0 {
			writeError(w, c.logger, invalidf("fabricId, or fabricName and a positive fabricPrice, are required"))
			return
		}
		selection = c.pricer.DesignSelection("", name, req.FabricPrice, design)
	}

	order := models.DesignOrder{
		Selection: selection,
		Size:      strings.TrimSpace(req.Size),
		Color:     strings.TrimSpace(req.Color),
		Quantity:  req.Quantity,
	}

	opener := newHTTPOpener(w, r)
	handoff, err := c.checkout.OrderDesign(ctx, order, opener)
	c.respond(w, opener, handoff, err)
}

// Consultation handles POST /consultation
func (c *OrderController) Consultation(w http.ResponseWriter, r *http.Request) {
	var req ConsultationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, c.logger, err)
		return
	}

	opener := newHTTPOpener(w, r)
	handoff, err := c.checkout.Consultation(r.Context(), req.Message, opener)
	c.respond(w, opener, handoff, err)
}

func (c *OrderController) respond(w http.ResponseWriter, opener *httpOpener, handoff models.Handoff, err error) {
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	if opener.redirected {
		return
	}
	writeJSON(w, c.logger, http.StatusOK, handoff)
}

// httpOpener opens the chat link by redirecting the browser when the request
// asks for it. Otherwise the link is returned in the JSON body and the UI
// opens it.
type httpOpener struct {
	w          http.ResponseWriter
	r          *http.Request
	redirect   bool
	redirected bool
}

func newHTTPOpener(w http.ResponseWriter, r *http.Request) *httpOpener {
	v := r.URL.Query().Get("redirect")
	return &httpOpener{w: w, r: r, redirect: v == "1" || strings.EqualFold(v, "true")}
}

func (o *httpOpener) Open(_ context.Context, handoff models.Handoff) error {
	if !o.redirect {
		return nil
	}
	http.Redirect(o.w, o.r, handoff.Link, http.StatusSeeOther)
	o.redirected = true
	return nil
}
