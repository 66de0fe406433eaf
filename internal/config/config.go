package config

import (
	"fmt"

	pkgconfig "github.com/utafrali/catalogview/pkg/config"
)

// Config holds all configuration for the catalog viewer service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8080"`

	// Shared catalog loaded at startup. Empty means sessions must upload
	// their own spreadsheet.
	CatalogPath string `env:"CATALOG_PATH" envDefault:""`

	// Sessions
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"12"`

	// Upload size cap in bytes (default 10 MiB).
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.SessionTTLHours < 1 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be at least 1, got %d", cfg.SessionTTLHours)
	}
	if cfg.MaxUploadBytes < 1 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return cfg, nil
}
