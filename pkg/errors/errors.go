package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrLoadFailed   = errors.New("catalog load failed")
	ErrBadSchema    = errors.New("catalog schema invalid")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// LoadFailed creates a 422 error for a spreadsheet that could not be loaded
// as a table (unreadable, empty, or malformed). The whole catalog is rejected.
func LoadFailed(err error) *AppError {
	return &AppError{
		Code:    "LOAD_FAILED",
		Message: fmt.Sprintf("could not load the catalog: %v", err),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrLoadFailed,
	}
}

// MissingColumn creates a 422 error naming the first required column that is
// absent from the spreadsheet.
func MissingColumn(column string) *AppError {
	return &AppError{
		Code:    "MISSING_COLUMN",
		Message: fmt.Sprintf("missing column: %s", column),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrBadSchema,
	}
}

// NoCatalog creates a 404 error for sessions that have no catalog loaded yet.
func NoCatalog() *AppError {
	return &AppError{
		Code:    "NO_CATALOG",
		Message: "no catalog is loaded for this session; upload a spreadsheet first",
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrLoadFailed), errors.Is(err, ErrBadSchema):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
