// Package schemas embeds the JSON Schema documents that structured narrative
// responses are validated against.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Schema file names
const (
	Narrative        = "narrative.schema.json"
	NarrativeMinimal = "narrative_minimal.schema.json"
)

// Load returns the raw content of an embedded schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(data), nil
}
