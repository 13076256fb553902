package ratelimit

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool             `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int              `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"600"`
	DefaultWindow   time.Duration    `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration    `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	IdleTimeout     time.Duration    `env:"RATE_LIMIT_IDLE_TIMEOUT" envDefault:"1h"`
	Whitelist       []string         `env:"RATE_LIMIT_WHITELIST"`
	Blacklist       []string         `env:"RATE_LIMIT_BLACKLIST"`
	EndpointConfigs []EndpointConfig `env:"-"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse rate limit env: %w", err)
	}
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	return cfg, nil
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Narrative requests call Gemini (strictest limits)
		{Path: "/reading", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/reading/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},

		// Local computation
		{Path: "/profile", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/radar.svg", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},

		// Health and metrics are unlimited (special case in matcher)
	}
}
