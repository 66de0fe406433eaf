package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrInternal, ErrLoadFailed, ErrBadSchema,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("zip: not a valid zip file")
	appErr := &AppError{Code: "LOAD_FAILED", Message: "could not load the catalog", Err: inner}
	assert.Contains(t, appErr.Error(), "LOAD_FAILED")
	assert.Contains(t, appErr.Error(), "could not load the catalog")
	assert.Contains(t, appErr.Error(), "zip: not a valid zip file")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

func TestAppError_Unwrap_Nil(t *testing.T) {
	appErr := &AppError{Code: "TEST", Message: "test"}
	assert.Nil(t, appErr.Unwrap())
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("product", "P001")
	require.NotNil(t, err)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "P001")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("price range is reversed")
	require.NotNil(t, err)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMissingColumn(t *testing.T) {
	err := MissingColumn("Launch Date")
	require.NotNil(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "MISSING_COLUMN", err.Code)
	assert.Equal(t, "missing column: Launch Date", err.Message)
	assert.True(t, errors.Is(err, ErrBadSchema))
}

func TestLoadFailed(t *testing.T) {
	err := LoadFailed(errors.New("zip: not a valid zip file"))
	require.NotNil(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "LOAD_FAILED", err.Code)
	assert.Contains(t, err.Message, "zip: not a valid zip file")
	assert.True(t, errors.Is(err, ErrLoadFailed))
}

func TestNoCatalog(t *testing.T) {
	err := NoCatalog()
	require.NotNil(t, err)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NO_CATALOG", err.Code)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// --- HTTP status mapping ---

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", MissingColumn("Price"), http.StatusUnprocessableEntity},
		{"wrapped app error", fmt.Errorf("load: %w", LoadFailed(errors.New("bad"))), http.StatusUnprocessableEntity},
		{"not found sentinel", fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound},
		{"invalid input sentinel", fmt.Errorf("x: %w", ErrInvalidInput), http.StatusBadRequest},
		{"load failed sentinel", fmt.Errorf("x: %w", ErrLoadFailed), http.StatusUnprocessableEntity},
		{"schema sentinel", fmt.Errorf("x: %w", ErrBadSchema), http.StatusUnprocessableEntity},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
