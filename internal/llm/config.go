// Package llm provides the text-generation collaborator client and its model
// configuration. Only Gemini is implemented; the Client interface keeps callers
// provider-agnostic and lets tests substitute a mock.
package llm

import (
	"fmt"
	"maps"
)

// ModelTier trades narrative quality against latency and cost
type ModelTier string

// Tiers, cheapest first. Lite is the default for readings.
const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard"
	TierAdvanced ModelTier = "advanced"
)

// Provider names a text-generation backend
type Provider string

const ProviderGemini Provider = "gemini"

// Config maps model tiers to provider model names
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini models at a creative temperature.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.9,
	}
}

// ParseTier converts a tier name into a ModelTier.
func ParseTier(s string) (ModelTier, error) {
	switch ModelTier(s) {
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(s), nil
	case "":
		return TierLite, nil
	default:
		return "", fmt.Errorf("unknown model tier %q (want lite, standard or advanced)", s)
	}
}

// tierFallback is tried in order when a tier has no model of its own
var tierFallback = []ModelTier{TierStandard, TierLite}

// GetModel returns the model for tier, falling back to the standard and then
// the lite model. It returns "" when none is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range append([]ModelTier{tier}, tierFallback...) {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with model assigned to tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = maps.Clone(c.Models)
	if out.Models == nil {
		out.Models = make(map[ModelTier]string, 1)
	}
	out.Models[tier] = model
	return &out
}
