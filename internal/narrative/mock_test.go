package narrative

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/elemental-vibe/internal/llm"
	"go.uber.org/goleak"
)

// opencensus, pulled in by the genai SDK, starts its stats worker in init
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

const fullResponse = `{
  "opening": "Water. Water. You.",
  "birthImagery": "Born in winter, still and deep.",
  "soulCity": "Tokyo.",
  "complementarySouls": "You're drawn to Fire souls.",
  "talismans": {"color": "Midnight Tide", "item": "a smooth river stone", "mantra": "I flow around every stone"},
  "ps": "Feeling stuck? Move. Your current knows the way.",
  "element": "Tidal Sage",
  "color": "#4ecdc4"
}`

const minimalResponse = `{"element": "Tidal Sage", "color": "#4ecdc4", "description": "Deep and calm.", "vibe": "still waters run deep"}`

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateStructuredFunc func(ctx context.Context, prompt string, schema *llm.Schema, tier llm.ModelTier) (string, error)

	mu      sync.Mutex
	calls   int
	prompts []string
}

func (m *MockLLMClient) GenerateStructured(ctx context.Context, prompt string, schema *llm.Schema, tier llm.ModelTier) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.GenerateStructuredFunc != nil {
		return m.GenerateStructuredFunc(ctx, prompt, schema, tier)
	}
	return fullResponse, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	return nil
}

func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// failingN fails the first n calls with err, then returns response.
func failingN(n int, err error, response string) func(context.Context, string, *llm.Schema, llm.ModelTier) (string, error) {
	var mu sync.Mutex
	seen := 0
	return func(_ context.Context, _ string, _ *llm.Schema, _ llm.ModelTier) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		seen++
		if seen <= n {
			return "", err
		}
		return response, nil
	}
}

// fakeSleeper records requested durations without waiting.
type fakeSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (f *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	f.delays = append(f.delays, d)
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeSleeper) Delays() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.delays))
	copy(out, f.delays)
	return out
}
