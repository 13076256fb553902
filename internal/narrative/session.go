package narrative

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/elemental-vibe/internal/elements"
)

// Runner is satisfied by *Orchestrator
type Runner interface {
	Run(ctx context.Context, in Input) (*Outcome, error)
}

// Submission is one user submission and, once finished, its narrative outcome.
type Submission struct {
	ID      uuid.UUID
	Reading elements.Reading
	Outcome *Outcome
	Err     error
	// Stale is set when Reset or a newer Submit happened before this one finished.
	// Stale submissions must be discarded by the caller.
	Stale bool
}

// Message returns the user-facing failure text, or "" on success.
func (s *Submission) Message() string {
	if s.Err != nil {
		return ApologyMessage
	}
	return ""
}

// Session tracks the current submission of one UI shell so that late results
// of abandoned submissions can be recognised.
type Session struct {
	runner Runner

	mu      sync.Mutex
	current uuid.UUID
}

// NewSession creates a Session running narratives through runner.
func NewSession(runner Runner) *Session {
	return &Session{runner: runner}
}

// Submit evaluates the reading and requests its narrative. It blocks until the
// orchestrator completes. The reading is returned even when the narrative fails.
func (s *Session) Submit(ctx context.Context, birthdate, name string) *Submission {
	id := uuid.New()
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()

	sub := &Submission{
		ID:      id,
		Reading: elements.Evaluate(birthdate, name),
	}
	sub.Outcome, sub.Err = s.runner.Run(ctx, InputFromReading(sub.Reading))
	sub.Stale = !s.IsCurrent(id)
	return sub
}

// Reset abandons the current submission.
func (s *Session) Reset() {
	s.mu.Lock()
	s.current = uuid.Nil
	s.mu.Unlock()
}

// IsCurrent reports whether id is the latest live submission.
func (s *Session) IsCurrent(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id != uuid.Nil && s.current == id
}

// Current returns the id of the latest live submission, or uuid.Nil.
func (s *Session) Current() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
