// Package config defines the global configuration structure for the BWIP
// poster service. Configuration is loaded once at process initialization and
// is immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File
//
// Any missing required value or invalid format causes the application to fail
// immediately on startup.
package config

import (
	"time"
)

// Config is the top-level configuration struct for the BWIP poster service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"bwip-poster-service"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain Configurations
	Server   ServerConfig
	Database DatabaseConfig
	Beaches  BeachesConfig
	PDF      PDFConfig
	Security SecurityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" validate:"required,url"`

	// Tuning Parameters
	MaxConns          int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
}

// BeachesConfig holds the beaches.ie EPA API integration settings.
type BeachesConfig struct {
	BaseURL string `envconfig:"BEACHES_BASE_URL" default:"https://data.epa.ie/bw/api/v1" validate:"required,url"`

	// Hard timeout on each upstream call. On timeout the client falls back
	// to a stale cache entry before surfacing failure.
	Timeout time.Duration `envconfig:"BEACHES_TIMEOUT" default:"10s"`

	// How long a successful response is considered fresh.
	CacheTTL time.Duration `envconfig:"BEACHES_CACHE_TTL" default:"1h"`

	// Routes all requests to the built-in fixture dataset instead of the
	// network. Used for offline and deterministic operation.
	UseMockData bool `envconfig:"BEACHES_USE_MOCK" default:"false"`

	UserAgent string `envconfig:"BEACHES_USER_AGENT" default:"BWIP/2.0"`
}

// PDFConfig holds rendering parameters for poster output.
type PDFConfig struct {
	DPI int `envconfig:"PDF_DPI" default:"300" validate:"min=72,max=1200"`
}

// SecurityConfig holds CORS settings for the API surface.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
