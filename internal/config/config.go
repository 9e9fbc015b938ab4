package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends for published pages.
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// Config holds all configuration for the chart rendering service
type Config struct {
	// Server configuration
	Port        string `env:"PORT,default=8981"`
	Environment string `env:"ENVIRONMENT,default=development"`
	AppVersion  string `env:"APP_VERSION"`

	// Page storage
	StorageBackend string `env:"STORAGE_BACKEND,default=local"`
	LocalPagesDir  string `env:"LOCAL_PAGES_DIR,default=./pages"`
	GCPProjectID   string `env:"GCP_PROJECT_ID"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Browser-side chart library
	VisualizationVersion string `env:"VISUALIZATION_VERSION,default=1"`
	LoaderURL            string `env:"CHART_LOADER_URL,default=https://www.google.com/jsapi"`
	JQueryURL            string `env:"JQUERY_URL,default=https://code.jquery.com/jquery-3.7.1.min.js"`
	StaticFallback       bool   `env:"STATIC_FALLBACK,default=false"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith loads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations envconfig tags cannot express.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendLocal:
		if c.LocalPagesDir == "" {
			return fmt.Errorf("LOCAL_PAGES_DIR is required for the %s backend", BackendLocal)
		}
	case BackendGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for the %s backend", BackendGCS)
		}
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.StorageBackend)
	}
	return nil
}
