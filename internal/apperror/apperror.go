// Package apperror defines the error kinds surfaced by services and stores.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStore      = "STORE_ERROR"
	CodeBadRequest = "BAD_REQUEST"
)

// AppError carries a machine-readable code and the HTTP status it maps to.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed field.
func Validation(field, message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    fmt.Sprintf("%s: %s", field, message),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound reports that no entity of the given kind has the id.
func NotFound(resource string, id uint) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s %d not found", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

// Store wraps a persistence failure.
func Store(op string, err error) *AppError {
	return &AppError{
		Code:       CodeStore,
		Message:    op,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// BadRequest reports an unparseable request.
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func IsNotFound(err error) bool   { return hasCode(err, CodeNotFound) }
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }
func IsStore(err error) bool      { return hasCode(err, CodeStore) }

func hasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
