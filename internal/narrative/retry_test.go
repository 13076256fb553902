package narrative

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonathan/elemental-vibe/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Delay(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 4, p.MaxAttempts())
	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))
	assert.Equal(t, time.Second, p.Delay(-1))

	custom := RetryPolicy{MaxRetries: 0, BaseDelay: 10 * time.Millisecond}
	assert.Equal(t, 1, custom.MaxAttempts())
	assert.Equal(t, 40*time.Millisecond, custom.Delay(2))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &llm.APIError{StatusCode: 429}, true},
		{"overloaded", &llm.APIError{StatusCode: 503}, true},
		{"wrapped rate limit", fmt.Errorf("call failed: %w", &llm.APIError{StatusCode: 429}), true},
		{"bad request", &llm.APIError{StatusCode: 400, Message: "bad"}, false},
		{"429 in message", errors.New("HTTP 429 Too Many Requests"), true},
		{"plain error", errors.New("connection reset"), false},
		{"cancelled", context.Canceled, false},
		{"parse error", &ParseError{Message: "bad json"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), 0))
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
