package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreConfig holds the storefront contact settings
type StoreConfig struct {
	BusinessName       string `yaml:"business_name"`
	WhatsAppNumber     string `yaml:"whatsapp_number"`
	MessagingBaseURL   string `yaml:"messaging_base_url"`
	Currency           string `yaml:"currency"`
	OrderPrefix        string `yaml:"order_prefix"`
	OrderSuffix        string `yaml:"order_suffix"`
	ConsultationPrefix string `yaml:"consultation_prefix"`
	ConsultationSuffix string `yaml:"consultation_suffix"`
}

// DefaultStoreConfig returns the built-in contact settings
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		BusinessName:       "Tribe Africa",
		WhatsAppNumber:     "254727399983",
		MessagingBaseURL:   "https://wa.me",
		Currency:           "KES",
		OrderPrefix:        "Hi Tribe Africa! 🌍\nHope you're doing great!\nI'd love to complete my order for:\n\n",
		OrderSuffix:        "\n\nKindly guide me on how to proceed — can't wait to rock this look! 😄",
		ConsultationPrefix: "Hi Tribe Africa! 🌍\nHope you're doing great!\n\n",
		ConsultationSuffix: "\n\nLooking forward to hearing from you! 😊",
	}
}

// LoadStore reads the store settings from a YAML file. Keys missing from the
// file keep their default value and a missing file yields the defaults.
func LoadStore(path string) (StoreConfig, error) {
	cfg := DefaultStoreConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read store config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse store config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid store config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the store settings
func (c StoreConfig) Validate() error {
	number := strings.TrimSpace(c.WhatsAppNumber)
	if number == "" {
		return fmt.Errorf("whatsapp_number is required")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("whatsapp_number must contain digits only, got %q", c.WhatsAppNumber)
		}
	}
	if strings.TrimSpace(c.Currency) == "" {
		return fmt.Errorf("currency cannot be empty")
	}
	if !strings.HasPrefix(c.MessagingBaseURL, "https://") && !strings.HasPrefix(c.MessagingBaseURL, "http://") {
		return fmt.Errorf("messaging_base_url must be an http(s) URL, got %q", c.MessagingBaseURL)
	}
	return nil
}
