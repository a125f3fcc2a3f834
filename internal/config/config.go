// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"melicalc/pkg/pricing"
)

// Config is the top-level application configuration.
type Config struct {
	Meli    MeliConfig    `yaml:"meli"`
	Costs   CostsConfig   `yaml:"costs"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeliConfig defines marketplace API settings. Credentials are optional:
// without them the client runs anonymously and the scraping fallback
// carries more of the load.
type MeliConfig struct {
	ClientID      string          `yaml:"client_id"`
	ClientSecret  string          `yaml:"client_secret"`
	Site          string          `yaml:"site"`
	TokenURL      string          `yaml:"token_url"`
	APIURL        string          `yaml:"api_url"`
	StorefrontURL string          `yaml:"storefront_url"`
	Timeout       time.Duration   `yaml:"timeout"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines marketplace API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// CostsConfig defines the user-tunable cost assumptions.
type CostsConfig struct {
	TaxPct          float64 `yaml:"tax_pct"`
	FixedCost       float64 `yaml:"fixed_cost"`
	Reputation      string  `yaml:"reputation"`
	DefaultWeightKg float64 `yaml:"default_weight_kg"`
	ListingTier     string  `yaml:"listing_tier"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	ApplyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a config with every default applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	applyMeliDefaults(&cfg.Meli)
	applyCostsDefaults(&cfg.Costs)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applyMeliDefaults(m *MeliConfig) {
	if m.Site == "" {
		m.Site = "MLB"
	}
	if m.TokenURL == "" {
		m.TokenURL = "https://api.mercadolibre.com/oauth/token"
	}
	if m.APIURL == "" {
		m.APIURL = "https://api.mercadolibre.com"
	}
	if m.StorefrontURL == "" {
		m.StorefrontURL = "https://produto.mercadolivre.com.br"
	}
	if m.Timeout == 0 {
		m.Timeout = 15 * time.Second
	}
	applyRateLimitDefaults(&m.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyCostsDefaults(c *CostsConfig) {
	if c.TaxPct == 0 {
		c.TaxPct = 4.0
	}
	if c.FixedCost == 0 {
		c.FixedCost = 1.50
	}
	if c.Reputation == "" {
		c.Reputation = string(pricing.ReputationNone)
	}
	if c.DefaultWeightKg == 0 {
		c.DefaultWeightKg = 0.5
	}
	if c.ListingTier == "" {
		c.ListingTier = string(pricing.TierClassic)
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if (cfg.Meli.ClientID == "") != (cfg.Meli.ClientSecret == "") {
		errs = append(errs, fmt.Errorf(
			"meli.client_id and meli.client_secret must be set together"))
	}

	if cfg.Costs.TaxPct < 0 {
		errs = append(errs, fmt.Errorf("costs.tax_pct must not be negative"))
	}
	if cfg.Costs.FixedCost < 0 {
		errs = append(errs, fmt.Errorf("costs.fixed_cost must not be negative"))
	}
	if cfg.Costs.DefaultWeightKg <= 0 {
		errs = append(errs, fmt.Errorf("costs.default_weight_kg must be positive"))
	}

	if _, err := pricing.ParseReputationTier(cfg.Costs.Reputation); err != nil {
		errs = append(errs, fmt.Errorf("costs.reputation: %w", err))
	}

	switch pricing.ListingTier(cfg.Costs.ListingTier) {
	case pricing.TierClassic, pricing.TierPremium:
	default:
		errs = append(errs, fmt.Errorf(
			"costs.listing_tier must be %q or %q (got %q)",
			pricing.TierClassic, pricing.TierPremium, cfg.Costs.ListingTier))
	}

	return errors.Join(errs...)
}
