package elements

import (
	"fmt"
	"strings"
)

// AssetPair holds the display images for an archetype
type AssetPair struct {
	Front string `json:"front"`
	Side  string `json:"side"`
}

// AssetTable maps an archetype name to its images.
type AssetTable map[string]AssetPair

// FallbackAssets is used for any archetype missing from a table.
var FallbackAssets = characterAssets(FallbackArchetype)

// characterAssets derives the conventional "/characters/<slug>-{front,side}.svg" pair
func characterAssets(name string) AssetPair {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return AssetPair{
		Front: fmt.Sprintf("/characters/%s-front.svg", slug),
		Side:  fmt.Sprintf("/characters/%s-side.svg", slug),
	}
}

// DefaultAssets returns the built-in table covering every archetype name.
func DefaultAssets() AssetTable {
	table := make(AssetTable)
	for _, name := range ArchetypeNames() {
		table[name] = characterAssets(name)
	}
	return table
}

// Lookup returns the images for an archetype, or FallbackAssets.
func (t AssetTable) Lookup(name string) AssetPair {
	if pair, ok := t[name]; ok {
		return pair
	}
	return FallbackAssets
}

// Merge returns a new table with overrides applied on top of t.
func (t AssetTable) Merge(overrides map[string]AssetPair) AssetTable {
	merged := make(AssetTable, len(t)+len(overrides))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
