package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "QUICKPOS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, exported for tests and docs.
const (
	EnvAppEnv       = "QUICKPOS_APP_ENV"
	EnvPort         = "QUICKPOS_APP_PORT"
	EnvProductsPath = "QUICKPOS_PRODUCTS_PATH"
	EnvSalesPath    = "QUICKPOS_SALES_PATH"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	Import       ImportConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUICKPOS_APP_ENV" required:"true"`
	Port         string `envconfig:"QUICKPOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUICKPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUICKPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig names the two backing tables. These paths are the only
// external resources the till touches.
type StoreConfig struct {
	ProductsPath string `envconfig:"QUICKPOS_PRODUCTS_PATH" default:"data/products.csv"`
	SalesPath    string `envconfig:"QUICKPOS_SALES_PATH" default:"data/sales.csv"`
}

func (s StoreConfig) validate() error {
	if strings.TrimSpace(s.ProductsPath) == "" {
		return fmt.Errorf("%s must not be blank", EnvProductsPath)
	}
	if strings.TrimSpace(s.SalesPath) == "" {
		return fmt.Errorf("%s must not be blank", EnvSalesPath)
	}
	if s.ProductsPath == s.SalesPath {
		return fmt.Errorf("products and sales tables must not share a file")
	}
	return nil
}

type ImportConfig struct {
	MaxUploadMB int `envconfig:"QUICKPOS_IMPORT_MAX_UPLOAD_MB" default:"10"`
}

type FeatureFlagsConfig struct {
	// AllowNegativeStock preserves the permissive decrement behavior:
	// stock may go negative and unknown barcodes are silently skipped.
	AllowNegativeStock bool `envconfig:"QUICKPOS_ALLOW_NEGATIVE_STOCK" default:"true"`
}
