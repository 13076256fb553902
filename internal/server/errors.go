// Package server provides the HTTP API for readings, radar charts and narratives.
package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNarrativeDisabled indicates the server runs without a narrative collaborator
var ErrNarrativeDisabled = errors.New("narrative collaborator not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNarrativeDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
