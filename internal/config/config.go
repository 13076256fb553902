// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/elemental-vibe/internal/elements"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Collaborator
	APIKey      string   `json:"api_key,omitempty"`                                                // Gemini API key
	Model       string   `json:"model,omitempty"`                                                  // Model name override for the selected tier
	Tier        string   `json:"tier,omitempty" validate:"omitempty,oneof=lite standard advanced"` // Model tier
	Variant     string   `json:"variant,omitempty" validate:"omitempty,oneof=full minimal"`        // Narrative response shape
	MaxRetries  *int     `json:"max_retries,omitempty" validate:"omitempty,gte=0,lte=10"`          // Retries after a rate-limit response
	RetryDelay  Duration `json:"retry_delay,omitempty" validate:"gte=0"`                           // Base backoff delay
	MinDuration Duration `json:"min_duration,omitempty" validate:"gte=0"`                          // Floor on narrative wait

	// Display
	RadarSize int                           `json:"radar_size,omitempty" validate:"omitempty,gte=120,lte=4096"` // Radar chart size in pixels
	Assets    map[string]elements.AssetPair `json:"assets,omitempty"`                                           // Per-archetype image overrides

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json console"`
	Verbose   bool   `json:"verbose,omitempty"`
}

// Duration is a time.Duration that reads "4s" style strings or nanosecond numbers from JSON.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(data))
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	retries := 3
	return Config{
		Tier:        "lite",
		Variant:     "full",
		MaxRetries:  &retries,
		RetryDelay:  Duration(time.Second),
		MinDuration: Duration(4 * time.Second),
		RadarSize:   320,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	known := make(map[string]bool)
	for _, name := range elements.ArchetypeNames() {
		known[name] = true
	}
	var unknown []string
	for name, pair := range c.Assets {
		if !known[name] {
			unknown = append(unknown, name)
			continue
		}
		if pair.Front == "" || pair.Side == "" {
			return fmt.Errorf("config error: assets for %q need both 'front' and 'side'", name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("config error: unknown archetype(s) in assets: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Layering env over file over built-ins is a chain of calls.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Tier == "" {
		result.Tier = defaults.Tier
	}
	if result.Variant == "" {
		result.Variant = defaults.Variant
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.MaxRetries == nil {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.RetryDelay == 0 {
		result.RetryDelay = defaults.RetryDelay
	}
	if result.MinDuration == 0 {
		result.MinDuration = defaults.MinDuration
	}
	if result.RadarSize == 0 {
		result.RadarSize = defaults.RadarSize
	}

	// Assets: per-archetype, own entries win
	if len(defaults.Assets) > 0 {
		merged := make(map[string]elements.AssetPair, len(defaults.Assets)+len(result.Assets))
		for k, v := range defaults.Assets {
			merged[k] = v
		}
		for k, v := range result.Assets {
			merged[k] = v
		}
		result.Assets = merged
	}

	// Bool fields: cannot distinguish unset from false, so we only OR them
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Retries returns MaxRetries, or 3 when unset.
func (c *Config) Retries() int {
	if c.MaxRetries == nil {
		return 3
	}
	return *c.MaxRetries
}
