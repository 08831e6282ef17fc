package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error type rendered by the HTTP layer
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func newAppError(httpCode int, code ErrorCode, message string, raw error) AppError {
	return AppError{
		Raw:       raw,
		HTTPCode:  httpCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// General Errors
func ErrInternal(err error) AppError {
	return newAppError(http.StatusInternalServerError, ErrorCode_INTERNAL, "Internal server error", err)
}

func ErrInvalidArgument(message string) AppError {
	return newAppError(http.StatusBadRequest, ErrorCode_VALIDATION, message, nil)
}

func ErrInvalidPayload(err error) AppError {
	return newAppError(http.StatusBadRequest, ErrorCode_VALIDATION, "Invalid payload", err)
}

func ErrNotFound(resource string) AppError {
	return newAppError(http.StatusNotFound, ErrorCode_NOT_FOUND, fmt.Sprintf("%s not found", resource), nil)
}

func ErrDuplicate(resource string) AppError {
	return newAppError(http.StatusConflict, ErrorCode_DUPLICATE, fmt.Sprintf("%s already exists", resource), nil)
}

func ErrForbidden(message string) AppError {
	return newAppError(http.StatusForbidden, ErrorCode_FORBIDDEN, message, nil)
}

// Authentication Errors
func ErrUnauthorized(message string) AppError {
	return newAppError(http.StatusUnauthorized, ErrorCode_UNAUTHORIZED, message, nil)
}

func ErrInvalidCredentials() AppError {
	return ErrUnauthorized("Invalid email or password")
}

func ErrInvalidToken() AppError {
	return ErrUnauthorized("Invalid authentication token")
}

func ErrInvalidRefreshToken() AppError {
	return ErrUnauthorized("Invalid refresh token")
}

// Formatting Errors
func ErrFormattingFailed(err error) AppError {
	return newAppError(http.StatusUnprocessableEntity, ErrorCode_FORMATTING, "Failed to format minutes", err)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return newAppError(http.StatusInternalServerError, ErrorCode_STORAGE,
		fmt.Sprintf("Storage operation failed: %s", operation), err)
}
