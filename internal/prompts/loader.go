// Package prompts loads the embedded narrative prompt templates. Each JSON file
// maps a prompt key to a template using {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// parsed files by name
var (
	cacheMu sync.RWMutex
	cache   = map[string]map[string]string{}
)

var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// Get returns the template stored under key in the embedded file filename.
func Get(filename, key string) (string, error) {
	file, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for templates that must exist at startup.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// List returns the keys of filename, sorted.
func List(filename string) ([]string, error) {
	file, err := load(filename)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(file)), nil
}

// Format substitutes data into template in a single pass. Placeholders without
// a value are left untouched.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for _, k := range slices.Sorted(maps.Keys(data)) {
		pairs = append(pairs, "{{."+k+"}}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatStrict is Format but fails if a placeholder of template has no value
// in data. Substituted values are never scanned for placeholders.
func FormatStrict(template string, data map[string]string) (string, error) {
	var missing []string
	for _, key := range Placeholders(template) {
		if _, ok := data[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("unfilled prompt placeholders: %s", strings.Join(missing, ", "))
	}
	return Format(template, data), nil
}

// Placeholders returns the distinct placeholder keys in template, sorted.
func Placeholders(template string) []string {
	var keys []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		keys = append(keys, m[1])
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// ClearCache drops parsed files so the next lookup reads them again.
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}

func load(filename string) (map[string]string, error) {
	cacheMu.RLock()
	file, ok := cache[filename]
	cacheMu.RUnlock()
	if ok {
		return file, nil
	}

	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = file
	cacheMu.Unlock()
	return file, nil
}
