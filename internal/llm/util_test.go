package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"element\": \"Tidal Sage\"}\n```",
			expected: `{"element": "Tidal Sage"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"element\": \"Iron Oak\"}\n```",
			expected: `{"element": "Iron Oak"}`,
		},
		{
			name:     "fence without newline keeps content",
			input:    "```{\"vibe\": \"calm\"}```",
			expected: `{"vibe": "calm"}`,
		},
		{
			name:     "plain object",
			input:    `{"color": "#4ecdc4"}`,
			expected: `{"color": "#4ecdc4"}`,
		},
		{
			name:     "nested talismans",
			input:    "```json\n{\"opening\": \"Fire. Fire. You.\", \"talismans\": {\"color\": \"ember\"}}\n```",
			expected: `{"opening": "Fire. Fire. You.", "talismans": {"color": "ember"}}`,
		},
		{
			name:     "prose before the object",
			input:    "Here is your reading:\n\n{\"element\": \"Steam Oracle\"}",
			expected: `{"element": "Steam Oracle"}`,
		},
		{
			name:     "prose after the object",
			input:    "{\"ps\": \"Breathe.\"}\n\nMay the stars guide you!",
			expected: `{"ps": "Breathe."}`,
		},
		{
			name:     "braces and escaped quotes inside strings",
			input:    `Result: {"mantra": "I say \"{flow}\" daily"} done`,
			expected: `{"mantra": "I say \"{flow}\" daily"}`,
		},
		{
			name:     "array payload",
			input:    "Souls:\n[\"fire\", \"wood\"]",
			expected: `["fire", "wood"]`,
		},
		{
			name:     "no JSON at all",
			input:    "  the stars are silent  ",
			expected: "the stars are silent",
		},
		{
			name:     "unbalanced object is returned as-is",
			input:    `{"opening": "cut off`,
			expected: `{"opening": "cut off`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		open     byte
		close    byte
		expected string
	}{
		{"object", `{"a": {"b": 1}} tail`, '{', '}', `{"a": {"b": 1}}`},
		{"object with array", `{"axes": [1, 2]}`, '{', '}', `{"axes": [1, 2]}`},
		{"array of objects", `[{"id": 1}, {"id": 2}] tail`, '[', ']', `[{"id": 1}, {"id": 2}]`},
		{"closing bracket in string", `["a]", "b"]`, '[', ']', `["a]", "b"]`},
		{"empty input", "", '{', '}', ""},
		{"wrong opener", "not json", '{', '}', ""},
		{"never closes", `{"a": 1`, '{', '}', ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractBalanced(tt.input, tt.open, tt.close))
		})
	}
}

func TestExtractHelpers(t *testing.T) {
	assert.Equal(t, `{"k": 1}`, extractJSONObject(`{"k": 1}, more`))
	assert.Equal(t, "", extractJSONObject(`[1]`))
	assert.Equal(t, `[1]`, extractJSONArray(`[1] more`))
	assert.Equal(t, "", extractJSONArray(`{"k": 1}`))
}
