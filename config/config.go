package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mikewolf256/detection-engineering-mini-lab/services"
	"github.com/mikewolf256/detection-engineering-mini-lab/utils"
)

// Geo source selection, derived from which geo settings are present.
const (
	GeoSourceHTTP   = "http"
	GeoSourceMMDB   = "mmdb"
	GeoSourceStatic = "static"
)

// Identity lookup modes.
const (
	IdentityLookupStatic = "static"
	IdentityLookupHTTP   = "http"
)

// Config represents the complete application configuration
type Config struct {
	Environment   string
	Osquery       OsqueryConfig
	Resolvers     ResolversConfig
	Observability ObservabilityConfig
	Output        OutputConfig
	Mock          MockConfig
}

// OsqueryConfig holds the process-events API client configuration.
// BaseURL and APIToken are required for the fetch pipeline but not for
// enrichment-only runs; RequireOsquery enforces them where they matter.
type OsqueryConfig struct {
	BaseURL  string
	APIToken string
	PageSize int `validate:"gt=0"`
	MaxPages int `validate:"gt=0"`
	Timeout  time.Duration
}

// ResolversConfig holds identity and geo resolver configuration
type ResolversConfig struct {
	IdentityLookup string `validate:"oneof=static http"`
	Okta           OktaConfig
	Geo            GeoConfig
}

// OktaConfig holds the directory API configuration
type OktaConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// GeoConfig holds geolocation lookup configuration. APIKey selects the HTTP
// provider; DBPath selects a local MMDB; with neither set the deterministic
// static resolver is used.
type GeoConfig struct {
	APIKey  string
	BaseURL string
	DBPath  string
	Timeout time.Duration
}

// Source returns which geo resolver the configuration selects.
func (g GeoConfig) Source() string {
	switch {
	case g.APIKey != "":
		return GeoSourceHTTP
	case g.DBPath != "":
		return GeoSourceMMDB
	default:
		return GeoSourceStatic
	}
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"` // json or console
}

// OutputConfig holds report rendering configuration
type OutputConfig struct {
	Format string `validate:"oneof=text json"`
}

// MockConfig holds the local mock API server configuration
type MockConfig struct {
	Addr       string
	EventCount int `validate:"gt=0"`
	// FailStatus forces every page request to fail with the given HTTP
	// status. Zero disables it.
	FailStatus int
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	env := getEnv("ENV", "dev")

	// Console encoding in dev, JSON in prod, unless LOG_FORMAT overrides.
	defaultLogFormat := "json"
	if env == "dev" || env == "development" {
		defaultLogFormat = "console"
	}

	cfg := &Config{
		Environment: env,
		Osquery: OsqueryConfig{
			BaseURL:  strings.TrimRight(getEnv("OSQUERY_API_URL", ""), "/"),
			APIToken: getEnv("OSQUERY_API_TOKEN", ""),
			PageSize: getEnvAsInt("PAGE_SIZE", 50),
			MaxPages: getEnvAsInt("MAX_PAGES", 1000),
			Timeout:  getEnvAsDuration("FETCH_TIMEOUT", 5*time.Second),
		},
		Resolvers: ResolversConfig{
			IdentityLookup: getEnv("IDENTITY_LOOKUP", IdentityLookupStatic),
			Okta: OktaConfig{
				BaseURL:  strings.TrimRight(getEnv("OKTA_API_URL", "https://demo.okta.com"), "/"),
				APIToken: getEnv("OKTA_API_TOKEN", "dummy_token"),
				Timeout:  getEnvAsDuration("OKTA_TIMEOUT", 5*time.Second),
			},
			Geo: GeoConfig{
				APIKey:  getEnv("GEOIP_API_KEY", ""),
				BaseURL: strings.TrimRight(getEnv("GEOIP_API_URL", "https://api.ipgeolocation.io"), "/"),
				DBPath:  getEnv("GEOIP_DB_PATH", ""),
				Timeout: getEnvAsDuration("GEOIP_TIMEOUT", 5*time.Second),
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", defaultLogFormat),
		},
		Output: OutputConfig{
			Format: getEnv("OUTPUT_FORMAT", "text"),
		},
		Mock: MockConfig{
			Addr:       getEnv("MOCK_HTTP_ADDR", ":8089"),
			EventCount: getEnvAsInt("MOCK_EVENT_COUNT", 12),
			FailStatus: getEnvAsInt("MOCK_FAIL_STATUS", 0),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the shape of everything loaded. Required osquery settings
// are deliberately excluded: enrichment-only runs work without them, and
// RequireOsquery covers the fetch pipeline.
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if c.Osquery.Timeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Resolvers.Okta.Timeout <= 0 {
		return fmt.Errorf("OKTA_TIMEOUT must be positive")
	}
	if c.Resolvers.Geo.Timeout <= 0 {
		return fmt.Errorf("GEOIP_TIMEOUT must be positive")
	}
	return nil
}

// RequireOsquery checks the settings the fetch pipeline cannot run without.
// Called before any network activity so a bad environment fails fast.
func (c *Config) RequireOsquery() error {
	if c.Osquery.BaseURL == "" {
		return services.ErrMissingAPIURL
	}
	if c.Osquery.APIToken == "" {
		return services.ErrMissingAPIToken
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
