package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "birthdate", Message: "is required"}
	assert.Equal(t, "validation error: birthdate - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("decode: %w", &ErrValidation{Field: "body", Message: "bad"})
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}

func TestHTTPStatus_NarrativeDisabled(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrNarrativeDisabled))
}

func TestHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
