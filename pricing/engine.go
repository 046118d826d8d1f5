package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tribe-africa-store/models"
)

// ErrMissingOfferPrice is raised when a product is flagged as on offer but
// carries no usable offer price
var ErrMissingOfferPrice = errors.New("product is on offer but has no valid offer price")

const (
	// DefaultFabricOverridePrice is the fixed promotional price of fabric-like products
	DefaultFabricOverridePrice int64 = 1999
	// DefaultDesignDiscountPercent is the discount applied to gallery design prices
	DefaultDesignDiscountPercent int64 = 20
)

// DefaultFabricMaterials are the materials priced at the fabric override price
var DefaultFabricMaterials = []string{"Fabric", "Cotton Blend"}

// Config represents the pricing configuration file
type Config struct {
	FabricMaterials       []string `json:"fabricMaterials"`
	FabricOverridePrice   int64    `json:"fabricOverridePrice"`
	DesignDiscountPercent int64    `json:"designDiscountPercent"`
	// Strict makes data-integrity problems panic instead of falling back
	Strict bool `json:"strict"`
}

// DefaultConfig returns the built-in pricing rules
func DefaultConfig() Config {
	materials := make([]string, len(DefaultFabricMaterials))
	copy(materials, DefaultFabricMaterials)
	return Config{
		FabricMaterials:       materials,
		FabricOverridePrice:   DefaultFabricOverridePrice,
		DesignDiscountPercent: DefaultDesignDiscountPercent,
	}
}

// Validate checks the configuration values
func (c Config) Validate() error {
	if len(c.FabricMaterials) == 0 {
		return fmt.Errorf("fabricMaterials are required")
	}
	if c.FabricOverridePrice <= 0 {
		return fmt.Errorf("fabricOverridePrice must be greater than 0")
	}
	if c.DesignDiscountPercent < 0 || c.DesignDiscountPercent > 100 {
		return fmt.Errorf("designDiscountPercent must be between 0 and 100")
	}
	return nil
}

// Engine applies the pricing rules. It holds no mutable state and every
// method is safe for concurrent use.
type Engine struct {
	config    Config
	materials map[string]struct{}
	logger    *zap.Logger
}

// NewEngine creates a pricing engine from an already loaded configuration
func NewEngine(config Config, logger *zap.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	materials := make(map[string]struct{}, len(config.FabricMaterials))
	for _, m := range config.FabricMaterials {
		materials[m] = struct{}{}
	}

	return &Engine{config: config, materials: materials, logger: logger}, nil
}

// NewEngineFromFile loads the pricing configuration from a JSON file. A
// missing file yields the default rules with the given strict flag.
func NewEngineFromFile(configPath string, strict bool, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	config := DefaultConfig()
	config.Strict = strict

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read pricing config: %w", err)
		}
		logger.Warn("pricing config not found, using defaults", zap.String("path", configPath))
		return NewEngine(config, logger)
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	engine, err := NewEngine(config, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("pricing config loaded", zap.String("path", configPath), zap.Bool("strict", config.Strict))
	return engine, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() Config {
	c := e.config
	c.FabricMaterials = append([]string(nil), e.config.FabricMaterials...)
	return c
}

// IsFabric reports whether the product material is priced at the fabric
// override. The material must match a configured name exactly.
func (e *Engine) IsFabric(p models.Product) bool {
	_, ok := e.materials[p.Material]
	return ok
}

// ValidateProduct reports catalog data-integrity problems for a product
func (e *Engine) ValidateProduct(p models.Product) error {
	if p.IsOnOffer {
		if p.OfferPrice == nil || *p.OfferPrice <= 0 || *p.OfferPrice >= p.Price {
			return fmt.Errorf("product %s: %w", p.ID, ErrMissingOfferPrice)
		}
	}
	return nil
}

// EffectiveUnitPrice returns the price charged per unit of a product.
// Fabric-like materials always cost the override price, even when on offer.
func (e *Engine) EffectiveUnitPrice(p models.Product) int64 {
	if e.IsFabric(p) {
		return e.config.FabricOverridePrice
	}
	if p.IsOnOffer {
		if err := e.ValidateProduct(p); err != nil {
			if e.config.Strict {
				panic(err)
			}
			e.logger.Warn("falling back to listed price", zap.String("product_id", p.ID), zap.Error(err))
			return p.Price
		}
		return *p.OfferPrice
	}
	return p.Price
}

// DiscountAmount returns the listed price minus the effective price, floored at 0
func (e *Engine) DiscountAmount(p models.Product) int64 {
	discount := p.Price - e.EffectiveUnitPrice(p)
	if discount < 0 {
		return 0
	}
	return discount
}

// DiscountPercent returns the discount as a whole percentage of the listed price
func (e *Engine) DiscountPercent(p models.Product) int64 {
	if p.Price <= 0 {
		return 0
	}
	return percentOf(e.DiscountAmount(p), p.Price)
}

// Quote returns the full display pricing of a product
func (e *Engine) Quote(p models.Product) models.PriceQuote {
	unit := e.EffectiveUnitPrice(p)
	discount := p.Price - unit
	if discount < 0 {
		discount = 0
	}
	var percent int64
	if p.Price > 0 {
		percent = percentOf(discount, p.Price)
	}
	fabric := e.IsFabric(p)
	return models.PriceQuote{
		ProductID:       p.ID,
		ListedPrice:     p.Price,
		UnitPrice:       unit,
		DiscountAmount:  discount,
		DiscountPercent: percent,
		FabricOverride:  fabric,
		OnOffer:         !fabric && p.IsOnOffer && unit != p.Price,
	}
}

// DesignDiscount returns the discount on a design base price
func (e *Engine) DesignDiscount(basePrice int64) int64 {
	return decimal.NewFromInt(basePrice).
		Mul(decimal.NewFromInt(e.config.DesignDiscountPercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// DesignSelection combines a fabric with a design. The design price is
// discounted and the fabric price is added to give the per-unit total.
func (e *Engine) DesignSelection(fabricID, fabricName string, fabricPrice int64, design models.Design) models.DesignSelection {
	discount := e.DesignDiscount(design.BasePrice)
	discounted := design.BasePrice - discount
	return models.DesignSelection{
		FabricID:              fabricID,
		FabricName:            fabricName,
		FabricPrice:           fabricPrice,
		Design:                design,
		DesignDiscount:        discount,
		DesignDiscountPercent: e.config.DesignDiscountPercent,
		DiscountedDesignPrice: discounted,
		TotalPrice:            fabricPrice + discounted,
	}
}

// FabricSelection builds a design selection from a fabric product, using its
// effective unit price as the fabric price
func (e *Engine) FabricSelection(fabric models.Product, design models.Design) models.DesignSelection {
	return e.DesignSelection(fabric.ID, fabric.Name, e.EffectiveUnitPrice(fabric), design)
}

func percentOf(part, whole int64) int64 {
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).
		Round(0).
		IntPart()
}
