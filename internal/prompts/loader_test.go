package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("narrative.json", "full-profile")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Five Elements personality analyst")
	assert.Contains(t, prompt, "{{.Archetype}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("narrative.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet("narrative.json", "minimal-profile")) })
}

func TestFormat(t *testing.T) {
	result := Format("Name: {{.Name}}, Season: {{.Season}}", map[string]string{
		"Name":   "Ziying",
		"Season": "winter",
	})
	assert.Equal(t, "Name: Ziying, Season: winter", result)

	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}), "placeholder remains")
}

func TestFormatStrict(t *testing.T) {
	_, err := FormatStrict("{{.Name}} of {{.Archetype}}", map[string]string{"Name": "Alex"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Archetype")

	out, err := FormatStrict("{{.Name}}", map[string]string{"Name": "Alex"})
	require.NoError(t, err)
	assert.Equal(t, "Alex", out)
}

func TestFormatStrict_ValuesAreOpaque(t *testing.T) {
	out, err := FormatStrict("Name: {{.Name}}, Season: {{.Season}}", map[string]string{
		"Name":   "{{.Zed}} {{.Season}}",
		"Season": "winter",
	})
	require.NoError(t, err)
	assert.Equal(t, "Name: {{.Zed}} {{.Season}}, Season: winter", out)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"Name", "Season"}, Placeholders("{{.Season}} {{.Name}} {{.Name}}"))
	assert.Empty(t, Placeholders("no placeholders, just {braces}"))
}

func TestNarrativePrompts_UseKnownPlaceholders(t *testing.T) {
	ClearCache()

	known := map[string]bool{
		"Name": true, "Primary": true, "PrimaryScore": true, "Secondary": true,
		"SecondaryScore": true, "Archetype": true, "Season": true, "Weakest": true,
	}
	keys, err := List("narrative.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"full-profile", "minimal-profile"}, keys)

	for _, key := range keys {
		for _, p := range Placeholders(MustGet("narrative.json", key)) {
			assert.True(t, known[p], "%s uses unknown placeholder %s", key, p)
		}
	}
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("narrative.json", "full-profile")
	require.NoError(t, err)
	prompt2, err := Get("narrative.json", "full-profile")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
