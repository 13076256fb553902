package narrative

import (
	"errors"
	"fmt"
)

// ApologyMessage is the fixed user-facing text shown when no narrative arrives.
const ApologyMessage = "The stars are cloudy. Try again later."

// ErrUnavailable is matched by every terminal orchestrator failure.
var ErrUnavailable = errors.New("narrative unavailable")

// Failure is the single terminal failure signal of a Run. It matches
// ErrUnavailable and its Cause via errors.Is.
type Failure struct {
	Attempts int
	Cause    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s after %d attempt(s): %v", ErrUnavailable, f.Attempts, f.Cause)
}

func (f *Failure) Unwrap() []error {
	return []error{ErrUnavailable, f.Cause}
}

// ParseError represents a response that is not a valid narrative. It is never retried.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
