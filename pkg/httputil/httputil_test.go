package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/techshop/catalog/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteData_SuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	WriteData(w, http.StatusOK, map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestWriteError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/api/products", nil)

	WriteError(w, r, apperrors.InvalidInput("minPrice must not exceed maxPrice"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_INPUT", resp.Error)
	assert.Contains(t, resp.Message, "minPrice")
}

func TestWriteError_UnknownErrorIsGeneric(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/api/products", nil)

	cause := errors.New(`search: elasticsearch: {"bool":{"must":[...]}} rejected`)
	WriteError(w, r, cause, discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	// The response must never leak internal query structure.
	assert.NotContains(t, resp.Message, "bool")
}

func TestWriteError_Unavailable(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/api/products", nil)

	WriteError(w, r, apperrors.Unavailable("elasticsearch", errors.New("dial tcp")), discardLogger())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
