// Package apperrors defines the sentinel errors shared across services and
// the HTTP layer, plus a CustomError wrapper that carries extra context.
package apperrors

import "errors"

// Resource errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
	ErrBadRequest            = errors.New("bad request")
	ErrValidationFailed      = errors.New("validation failed")
)

// Authentication and authorization errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Library errors
var (
	ErrBookUnavailable = errors.New("no copies of this book are available")
	ErrIssueNotActive  = errors.New("book issue is not active")
	ErrBookNotFound    = errors.New("book not found")
	ErrIssueNotFound   = errors.New("book issue not found")
)

// Super-admin errors
var (
	ErrBackupNotFound = errors.New("backup not found")
	ErrRoleNotFound   = errors.New("role assignment not found")
	ErrEmailTaken     = errors.New("an account with this email already exists")
)

// CustomError wraps a sentinel with a human-readable message and optional
// details for the API error envelope.
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel for errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode attaches an error code.
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewNotFoundError creates a resource-not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
