package config

import (
	"fmt"
	"os"
	"strings"
)

// Storage backends for the persisted cart
const (
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the process settings read from the environment
type Config struct {
	Env     string
	Port    string
	BaseURL string

	StoreConfigPath   string
	PricingConfigPath string
	CatalogPath       string

	StorageBackend string
	StorageDir     string
	CartStorageKey string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	GoogleCredentials string
	ChromePath        string
	GalleryDir        string
}

// getEnv returns the value of key, or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// FromEnv reads the configuration from environment variables
func FromEnv() Config {
	// PORT from Render doesn't include the colon but local setups sometimes do
	port := strings.TrimPrefix(getEnv("PORT", "8080"), ":")

	return Config{
		Env:     getEnv("APP_ENV", "development"),
		Port:    port,
		BaseURL: strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),

		StoreConfigPath:   getEnv("STORE_CONFIG", "config/store.yaml"),
		PricingConfigPath: getEnv("PRICING_CONFIG", "config/pricing.json"),
		CatalogPath:       getEnv("CATALOG_PATH", "data/catalog.json"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageFile)),
		StorageDir:     getEnv("STORAGE_DIR", ".storage"),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "cart"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		GalleryDir:        getEnv("GALLERY_DIR", "gallery"),
	}
}

// IsProduction reports whether the service runs in production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// StrictPricing reports whether pricing data errors should fail loudly
func (c Config) StrictPricing() bool {
	return c.Env == "development"
}

// Validate checks the settings needed by the selected storage backend
func (c Config) Validate() error {
	switch c.StorageBackend {
	case StorageFile:
		if c.StorageDir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the file storage backend")
		}
	case StoragePostgres:
		if _, err := c.DatabaseDSN(); err != nil {
			return err
		}
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (valid: file, redis, postgres, memory)", c.StorageBackend)
	}
	if c.CartStorageKey == "" {
		return fmt.Errorf("CART_STORAGE_KEY cannot be empty")
	}
	return nil
}

// DatabaseDSN returns DATABASE_URL, or a connection string built from the
// individual DB_* variables
func (c Config) DatabaseDSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode), nil
}
