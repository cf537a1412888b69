// Package errors defines the application error taxonomy shared by the usecase
// and delivery layers.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors sharing the same business error code, so a WithDetails
// copy still compares equal to its predefined base.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.message == t.message
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Unauthorized",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"This email is already registered",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Card-related errors. Update and delete deliberately merge not-found and
	// unauthorized so callers cannot probe for cards owned by other users.
	ErrCardNotFound = NewBaseError(
		http.StatusNotFound,
		"CARD_NOT_FOUND",
		"Card not found",
		"",
	)

	ErrCardNotOwned = NewBaseError(
		http.StatusNotFound,
		"CARD_NOT_FOUND",
		"Card not found or unauthorized",
		"",
	)

	ErrScannedCardNotFound = NewBaseError(
		http.StatusNotFound,
		"SCANNED_CARD_NOT_FOUND",
		"Scanned card not found",
		"",
	)

	ErrVisitorCardNotFound = NewBaseError(
		http.StatusNotFound,
		"VISITOR_CARD_NOT_FOUND",
		"Your card not found",
		"",
	)

	ErrShareNotOwnCard = NewBaseError(
		http.StatusForbidden,
		"SHARE_FORBIDDEN",
		"You can only share your own cards",
		"",
	)

	ErrPhoneNumberRequired = NewBaseError(
		http.StatusBadRequest,
		"PHONE_NUMBER_REQUIRED",
		"phoneNumber is required in personalInfo",
		"",
	)

	// Contact-related errors.
	ErrContactNotFound = NewBaseError(
		http.StatusBadRequest,
		"CONTACT_NOT_FOUND",
		"Contact not found or unauthorized",
		"",
	)

	ErrIdentifierRequired = NewBaseError(
		http.StatusBadRequest,
		"IDENTIFIER_REQUIRED",
		"Phone or email is required to save contact",
		"",
	)

	ErrContactNameRequired = NewBaseError(
		http.StatusBadRequest,
		"NAME_REQUIRED",
		"First name or last name is required",
		"",
	)

	ErrInvalidEmailFormat = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EMAIL_FORMAT",
		"Invalid email format",
		"",
	)

	// Validation-related errors.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Upstream collaborator errors. Callers convert these to safe fallbacks
	// wherever the primary write can proceed without the upstream result.
	ErrUpstreamFailure = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_FAILURE",
		"Upstream provider request failed",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Too many requests, slow down",
		"",
	)

	// General errors.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
