package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	// Reason is a machine-readable hint for the UI, e.g. "email_not_verified"
	Reason string `json:"reason,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches on status code and reason so sentinel errors survive copies
// made by NewRemoteError.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason && (t.Reason != "" || e.Message == t.Message)
}

// Reasons reported alongside an error so the UI can route the user.
const (
	ReasonEmailNotVerified = "email_not_verified"
	ReasonNetwork          = "network"
	ReasonNoSession        = "no_session"
)

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrEmailNotVerified   = &AppError{Code: http.StatusForbidden, Message: "Email not verified", Reason: ReasonEmailNotVerified}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Session has expired, please log in again", Reason: ReasonNoSession}
	ErrNoSession          = &AppError{Code: http.StatusUnauthorized, Message: "Not logged in", Reason: ReasonNoSession}
	ErrNetwork            = &AppError{Code: http.StatusServiceUnavailable, Message: "Unable to reach the server, please try again", Reason: ReasonNetwork}
	ErrSubmitInProgress   = &AppError{Code: http.StatusConflict, Message: "The transaction is already being submitted"}
	ErrRequestInProgress  = &AppError{Code: http.StatusConflict, Message: "A request with this Idempotency-Key is still in progress"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewRemoteError wraps an error reported by the remote ledger API. The
// message is kept verbatim so it can be shown to the user as-is.
func NewRemoteError(code int, message, reason string, fieldErrors []FieldError) *AppError {
	if code < 400 {
		code = http.StatusBadGateway
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return &AppError{
		Code:    code,
		Message: message,
		Errors:  fieldErrors,
		Reason:  reason,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsValidation reports whether err is a field-level validation failure
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
