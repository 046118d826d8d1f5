package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tribe-africa-store/models"
)

var (
	// ErrEmptyCart is returned when checking out a cart with no line items
	ErrEmptyCart = errors.New("cart is empty")
	// ErrEmptyMessage is returned when a consultation has no message
	ErrEmptyMessage = errors.New("message is required")
)

// HandoffConfig describes the external chat the orders are handed to
type HandoffConfig struct {
	BaseURL            string
	Number             string
	OrderPrefix        string
	OrderSuffix        string
	ConsultationPrefix string
	ConsultationSuffix string
}

// DefaultHandoffConfig returns the store's WhatsApp contact settings
func DefaultHandoffConfig() HandoffConfig {
	return HandoffConfig{
		BaseURL:            "https://wa.me",
		Number:             "254727399983",
		OrderPrefix:        "Hi Tribe Africa! 🌍\nHope you're doing great!\nI'd love to complete my order for:\n\n",
		OrderSuffix:        "\n\nKindly guide me on how to proceed — can't wait to rock this look! 😄",
		ConsultationPrefix: "Hi Tribe Africa! 🌍\nHope you're doing great!\n\n",
		ConsultationSuffix: "\n\nLooking forward to hearing from you! 😊",
	}
}

// Opener opens an external link, e.g. by redirecting the user's browser.
// There is no confirmation that the order was received.
type Opener interface {
	Open(ctx context.Context, handoff models.Handoff) error
}

// OpenerFunc adapts a function to the Opener interface
type OpenerFunc func(ctx context.Context, handoff models.Handoff) error

func (f OpenerFunc) Open(ctx context.Context, handoff models.Handoff) error {
	return f(ctx, handoff)
}

// CartCheckout is implemented by the cart store
type CartCheckout interface {
	Checkout(ctx context.Context, handoff func(items []models.LineItem)) bool
}

// CheckoutService turns orders into chat deep links and opens them
type CheckoutService struct {
	config    HandoffConfig
	formatter *OrderFormatter
	cart      CartCheckout
	logger    *zap.Logger
	newID     func() string
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(config HandoffConfig, formatter *OrderFormatter, cart CartCheckout, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultHandoffConfig().BaseURL
	}
	return &CheckoutService{
		config:    config,
		formatter: formatter,
		cart:      cart,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// BuildLink returns the deep link carrying message as its text parameter
func (s *CheckoutService) BuildLink(message string) string {
	return fmt.Sprintf("%s/%s?text=%s", strings.TrimRight(s.config.BaseURL, "/"), s.config.Number, encodeURIComponent(message))
}

// OrderMessage wraps the formatted order in the order prefix and suffix
func (s *CheckoutService) OrderMessage(order models.Order) (string, error) {
	body, err := s.formatter.Format(order)
	if err != nil {
		return "", err
	}
	return s.config.OrderPrefix + body + s.config.OrderSuffix, nil
}

// ConsultationMessage wraps free text in the consultation prefix and suffix
func (s *CheckoutService) ConsultationMessage(message string) string {
	return s.config.ConsultationPrefix + message + s.config.ConsultationSuffix
}

// CheckoutCart hands the whole cart off and clears it. The cart is cleared
// as soon as the link has been handed to the opener, even if opening failed.
func (s *CheckoutService) CheckoutCart(ctx context.Context, opener Opener) (models.Handoff, error) {
	var (
		handoff models.Handoff
		err     error
	)
	ok := s.cart.Checkout(ctx, func(items []models.LineItem) {
		handoff, err = s.handoff(ctx, models.CartOrder{Items: items}, opener)
	})
	if !ok {
		return models.Handoff{}, ErrEmptyCart
	}
	if err != nil {
		return models.Handoff{}, err
	}
	return handoff, nil
}

// OrderProduct hands off a single product without touching the cart
func (s *CheckoutService) OrderProduct(ctx context.Context, item models.LineItem, opener Opener) (models.Handoff, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return s.handoff(ctx, models.SingleProductOrder{Item: item}, opener)
}

// OrderDesign hands off a fabric and design selection
func (s *CheckoutService) OrderDesign(ctx context.Context, order models.DesignOrder, opener Opener) (models.Handoff, error) {
	if order.Quantity < 1 {
		order.Quantity = 1
	}
	return s.handoff(ctx, order, opener)
}

// Consultation hands off a free-text enquiry
func (s *CheckoutService) Consultation(ctx context.Context, message string, opener Opener) (models.Handoff, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Handoff{}, ErrEmptyMessage
	}
	text := s.ConsultationMessage(message)
	handoff := models.Handoff{
		ID:      s.newID(),
		Kind:    models.OrderKindConsultation,
		Link:    s.BuildLink(text),
		Message: text,
	}
	s.open(ctx, handoff, opener)
	return handoff, nil
}

func (s *CheckoutService) handoff(ctx context.Context, order models.Order, opener Opener) (models.Handoff, error) {
	text, err := s.OrderMessage(order)
	if err != nil {
		return models.Handoff{}, fmt.Errorf("failed to format %s order: %w", order.Kind(), err)
	}
	handoff := models.Handoff{
		ID:      s.newID(),
		Kind:    order.Kind(),
		Link:    s.BuildLink(text),
		Message: text,
	}
	s.open(ctx, handoff, opener)
	return handoff, nil
}

// open is fire-and-forget: an opener failure is logged and not returned
func (s *CheckoutService) open(ctx context.Context, handoff models.Handoff, opener Opener) {
	s.logger.Info("checkout handoff",
		zap.String("handoff_id", handoff.ID),
		zap.String("kind", string(handoff.Kind)),
		zap.Int("message_bytes", len(handoff.Message)))
	if opener == nil {
		return
	}
	if err := opener.Open(ctx, handoff); err != nil {
		s.logger.Warn("failed to open handoff link", zap.String("handoff_id", handoff.ID), zap.Error(err))
	}
}

// encodeURIComponent escapes s the way browsers do for a query value:
// spaces become %20 rather than +
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
