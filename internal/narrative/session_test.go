package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingRunner waits for release before returning its result.
type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func (b *blockingRunner) Run(_ context.Context, _ Input) (*Outcome, error) {
	if b.started != nil {
		close(b.started)
	}
	if b.release != nil {
		<-b.release
	}
	if b.err != nil {
		return nil, b.err
	}
	return &Outcome{Variant: VariantMinimal, Minimal: &MinimalResult{Color: "#4ecdc4"}, Attempts: 1}, nil
}

func TestSession_Submit(t *testing.T) {
	s := NewSession(&blockingRunner{})

	sub := s.Submit(context.Background(), "01/02/2000", "Ziying")

	assert.NotEqual(t, uuid.Nil, sub.ID)
	assert.False(t, sub.Stale)
	require.NoError(t, sub.Err)
	assert.Equal(t, "Tidal Sage", sub.Reading.Archetype.Name)
	assert.Equal(t, "#4ecdc4", sub.Outcome.Color())
	assert.Equal(t, "", sub.Message())
	assert.True(t, s.IsCurrent(sub.ID))
	assert.Equal(t, sub.ID, s.Current())
}

func TestSession_FailureKeepsReading(t *testing.T) {
	s := NewSession(&blockingRunner{err: &Failure{Attempts: 4, Cause: errors.New("429")}})

	sub := s.Submit(context.Background(), "07/15/1998", "Alex")

	require.Error(t, sub.Err)
	assert.Nil(t, sub.Outcome)
	assert.Equal(t, "Solar Nomad", sub.Reading.Archetype.Name)
	assert.Equal(t, ApologyMessage, sub.Message())
}

func TestSession_ResetMarksInFlightStale(t *testing.T) {
	runner := &blockingRunner{started: make(chan struct{}), release: make(chan struct{})}
	s := NewSession(runner)

	done := make(chan *Submission)
	go func() {
		done <- s.Submit(context.Background(), "01/02/2000", "Ziying")
	}()

	<-runner.started
	s.Reset()
	assert.Equal(t, uuid.Nil, s.Current())
	close(runner.release)

	sub := <-done
	assert.True(t, sub.Stale)
	assert.False(t, s.IsCurrent(sub.ID))
}

func TestSession_NewerSubmitSupersedes(t *testing.T) {
	first := &blockingRunner{started: make(chan struct{}), release: make(chan struct{})}
	s := NewSession(first)

	done := make(chan *Submission)
	go func() {
		done <- s.Submit(context.Background(), "01/02/2000", "Ziying")
	}()
	<-first.started

	// swap to an instant runner for the second submission
	s.runner = &blockingRunner{}
	second := s.Submit(context.Background(), "07/15/1998", "Alex")
	assert.False(t, second.Stale)

	close(first.release)
	old := <-done
	assert.True(t, old.Stale)
	assert.NotEqual(t, old.ID, second.ID)
}

func TestSession_IsCurrentNil(t *testing.T) {
	s := NewSession(&blockingRunner{})
	assert.False(t, s.IsCurrent(uuid.Nil))
}
