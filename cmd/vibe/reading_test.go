package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonathan/elemental-vibe/internal/config"
	"github.com/jonathan/elemental-vibe/internal/llm"
	"github.com/jonathan/elemental-vibe/internal/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const narrativeJSON = `{
  "opening": "Water. Metal. You.",
  "birthImagery": "Winter ice.",
  "soulCity": "London.",
  "complementarySouls": "Fire souls.",
  "talismans": {"color": "Glacier Blue", "item": "silver compass", "mantra": "I see clearly"},
  "ps": "Breathe.",
  "element": "Tidal Sage",
  "color": "#4ecdc4"
}`

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateStructuredFunc func(ctx context.Context, prompt string, schema *llm.Schema, tier llm.ModelTier) (string, error)
	calls                  int
	closed                 bool
}

func (m *MockLLMClient) GenerateStructured(ctx context.Context, prompt string, schema *llm.Schema, tier llm.ModelTier) (string, error) {
	m.calls++
	if m.GenerateStructuredFunc != nil {
		return m.GenerateStructuredFunc(ctx, prompt, schema, tier)
	}
	return narrativeJSON, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	m.closed = true
	return nil
}

// useMockClient routes runReading to mock and makes retries and the floor fast
func useMockClient(t *testing.T, mock *MockLLMClient) {
	t.Helper()
	setFlag(t, &newLLMClient, func(_ context.Context, _ *llm.Config, _ string) (llm.Client, error) {
		return mock, nil
	})
	cfg.APIKey = "test-key"
	cfg.MinDuration = 0
	cfg.RetryDelay = config.Duration(time.Millisecond)
	setFlag(t, &readingBirthdate, "01/02/2000")
	setFlag(t, &readingName, "Ziying")
	setFlag(t, &readingFormat, "text")
}

func TestRunReading_Success(t *testing.T) {
	cmd, buf := newTestCommand(t)
	mock := &MockLLMClient{}
	useMockClient(t, mock)

	require.NoError(t, runReading(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Tidal Sage")
	assert.Contains(t, out, "NARRATIVE")
	assert.Contains(t, out, "Glacier Blue")
	assert.NotContains(t, out, narrative.ApologyMessage)
	assert.Equal(t, 1, mock.calls)
	assert.True(t, mock.closed)
}

func TestRunReading_FailureShowsApology(t *testing.T) {
	cmd, buf := newTestCommand(t)
	mock := &MockLLMClient{
		GenerateStructuredFunc: func(_ context.Context, _ string, _ *llm.Schema, _ llm.ModelTier) (string, error) {
			return "", &llm.APIError{StatusCode: 429, Message: "quota"}
		},
	}
	useMockClient(t, mock)

	require.NoError(t, runReading(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Tidal Sage")
	assert.Contains(t, out, narrative.ApologyMessage)
	assert.Equal(t, 4, mock.calls)
}

func TestRunReading_JSON(t *testing.T) {
	cmd, buf := newTestCommand(t)
	useMockClient(t, &MockLLMClient{})
	setFlag(t, &readingFormat, "json")

	require.NoError(t, runReading(cmd, nil))

	var out struct {
		ID        string             `json:"id"`
		Narrative *narrative.Outcome `json:"narrative"`
		Message   string             `json:"message"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotEmpty(t, out.ID)
	require.NotNil(t, out.Narrative)
	assert.Equal(t, "London.", out.Narrative.Full.SoulCity)
	assert.Empty(t, out.Message)
}

func TestRunReading_MinimalVerbose(t *testing.T) {
	cmd, buf := newTestCommand(t)
	mock := &MockLLMClient{
		GenerateStructuredFunc: func(_ context.Context, _ string, _ *llm.Schema, _ llm.ModelTier) (string, error) {
			return `{"element": "Tidal Sage", "color": "#4ecdc4", "description": "Calm.", "vibe": "deep still water"}`, nil
		},
	}
	useMockClient(t, mock)
	setFlag(t, &readingVariant, "minimal")
	cfg.Verbose = true

	require.NoError(t, runReading(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "deep still water")
	assert.Contains(t, out, "METRICS")
	assert.Contains(t, out, `vibe_narrative_runs_total{state="succeeded"} 1`)
}

func TestRunReading_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		cmd, _ := newTestCommand(t)
		useMockClient(t, &MockLLMClient{})
		cfg.APIKey = ""
		setFlag(t, &readingAPIKey, "")
		assert.ErrorContains(t, runReading(cmd, nil), "API key is required")
	})
	t.Run("bad tier", func(t *testing.T) {
		cmd, _ := newTestCommand(t)
		useMockClient(t, &MockLLMClient{})
		setFlag(t, &readingTier, "turbo")
		assert.ErrorContains(t, runReading(cmd, nil), "unknown model tier")
	})
	t.Run("bad variant", func(t *testing.T) {
		cmd, _ := newTestCommand(t)
		useMockClient(t, &MockLLMClient{})
		setFlag(t, &readingVariant, "epic")
		assert.ErrorContains(t, runReading(cmd, nil), "unknown narrative variant")
	})
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
