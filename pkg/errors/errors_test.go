package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.ErrorIs(t, err, cause)
}

func TestNotFound(t *testing.T) {
	err := NotFound("product", "p-1")

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Message, "p-1")
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("elasticsearch", errors.New("dial tcp: refused"))

	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrServiceUnavail)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrServiceUnavail, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
		{InvalidInput("bad sort"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}
