package narrative

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/elemental-vibe/internal/llm"
)

// RetryPolicy bounds retries of transient collaborator failures.
type RetryPolicy struct {
	MaxRetries int           `json:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `json:"base_delay" validate:"gte=0"`
}

// DefaultRetryPolicy is 3 retries after delays of 1s, 2s and 4s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}
}

// Delay returns the backoff before retry number retry (0-based): BaseDelay * 2^retry.
func (p RetryPolicy) Delay(retry int) time.Duration {
	if retry < 0 {
		retry = 0
	}
	return p.BaseDelay * time.Duration(1<<uint(retry))
}

// MaxAttempts is the initial attempt plus MaxRetries.
func (p RetryPolicy) MaxAttempts() int {
	return p.MaxRetries + 1
}

// IsTransient reports whether err is a rate-limit or overload condition: an
// *llm.APIError with status 429 or 503, or any error whose message contains "429".
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return true
		}
	}
	return strings.Contains(err.Error(), "429")
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the real-time Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
