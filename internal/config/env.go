package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds raw environment values. Unset variables leave zero values.
type Env struct {
	APIKey      string        `env:"GEMINI_API_KEY"`
	Model       string        `env:"VIBE_MODEL"`
	Tier        string        `env:"VIBE_TIER"`
	Variant     string        `env:"VIBE_VARIANT"`
	MaxRetries  *int          `env:"VIBE_MAX_RETRIES"`
	RetryDelay  time.Duration `env:"VIBE_RETRY_DELAY"`
	MinDuration time.Duration `env:"VIBE_MIN_DURATION"`
	RadarSize   int           `env:"VIBE_RADAR_SIZE"`
	LogLevel    string        `env:"VIBE_LOG_LEVEL"`
	LogFormat   string        `env:"VIBE_LOG_FORMAT"`
	Verbose     bool          `env:"VIBE_VERBOSE"`
	ConfigFile  string        `env:"VIBE_CONFIG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv reads Env from the process environment.
func FromEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Config converts the environment values into a partial Config.
func (e Env) Config() Config {
	return Config{
		APIKey:      e.APIKey,
		Model:       e.Model,
		Tier:        e.Tier,
		Variant:     e.Variant,
		MaxRetries:  e.MaxRetries,
		RetryDelay:  Duration(e.RetryDelay),
		MinDuration: Duration(e.MinDuration),
		RadarSize:   e.RadarSize,
		LogLevel:    e.LogLevel,
		LogFormat:   e.LogFormat,
		Verbose:     e.Verbose,
	}
}

// Load layers the environment over the optional config file over Defaults and
// validates the result. path overrides VIBE_CONFIG.
func Load(path string) (Config, error) {
	e, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		path = e.ConfigFile
	}

	file := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = *loaded
	}

	fromEnv := e.Config()
	layered := fromEnv.MergeWithDefaults(file)
	cfg := layered.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
