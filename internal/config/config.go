// Package config reads service settings from the environment, after loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/zini-storefront/internal/checkout"
	"github.com/nikolayk812/zini-storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

const defaultSessionIdleTimeout = 30 * time.Minute

type CartStorage string

const (
	CartStoragePostgres CartStorage = "postgres"
	CartStorageFile     CartStorage = "file"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	CartStorage CartStorage
	CartDir     string
	StaticDir   string
	CORSOrigins []string

	OrderProcessingDelay  time.Duration
	SessionIdleTimeout    time.Duration
	DeliveryFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal

	GeminiAPIKey string
	EnvFile      string
}

// Load applies the env file (default ".env") first; variables already set in the environment win.
func Load() (Config, error) {
	envFile := getenv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromEnv(envFile)
}

func FromEnv(envFile string) (Config, error) {
	cfg := Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		CartStorage:  CartStorage(getenv("CART_STORAGE", string(CartStoragePostgres))),
		CartDir:      getenv("CART_DIR", "./data/carts"),
		StaticDir:    os.Getenv("STATIC_DIR"),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS", "*")),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		EnvFile:      envFile,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is empty")
	}

	switch cfg.CartStorage {
	case CartStoragePostgres, CartStorageFile:
	default:
		return Config{}, fmt.Errorf("CART_STORAGE[%s] is not valid", cfg.CartStorage)
	}

	var err error

	cfg.OrderProcessingDelay, err = time.ParseDuration(getenv("ORDER_PROCESSING_DELAY", checkout.DefaultProcessingDelay.String()))
	if err != nil {
		return Config{}, fmt.Errorf("ORDER_PROCESSING_DELAY: %w", err)
	}

	cfg.SessionIdleTimeout, err = time.ParseDuration(getenv("SESSION_IDLE_TIMEOUT", defaultSessionIdleTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_IDLE_TIMEOUT: %w", err)
	}
	if cfg.SessionIdleTimeout <= 0 {
		return Config{}, fmt.Errorf("SESSION_IDLE_TIMEOUT[%s] is not positive", cfg.SessionIdleTimeout)
	}

	cfg.DeliveryFee, err = parseAmount("DELIVERY_FEE", pricing.DefaultDeliveryFee)
	if err != nil {
		return Config{}, err
	}

	cfg.FreeShippingThreshold, err = parseAmount("FREE_SHIPPING_THRESHOLD", pricing.DefaultFreeShippingThreshold)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseAmount(name string, def int64) (decimal.Decimal, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return decimal.NewFromInt(def), nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s[%s] is not a number: %w", name, raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s[%s] is negative", name, raw)
	}

	return amount, nil
}

func getenv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
