package apperrors

import "errors"

// Error taxonomy. Every error that leaves a service wraps one of these.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("not authorized")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Domain errors carrying their user-facing message.
var (
	ErrEmailAlreadyExists   = NewConflictError("User already exists")
	ErrAlreadyRegistered    = NewConflictError("You are already registered for this event")
	ErrNotRegistered        = NewConflictError("You are not registered for this event")
	ErrEventFull            = NewCustomError(ErrCapacityExceeded, "Event is full")
	ErrEventNotFound        = NewResourceNotFoundError("Event not found")
	ErrUserNotFound         = NewResourceNotFoundError("User not found")
	ErrContactNotFound      = NewResourceNotFoundError("Contact message not found")
	ErrConversationExists   = NewConflictError("Conversation already exists")
	ErrConversationNotFound = NewResourceNotFoundError("Conversation not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error, optionally naming the offending field
func NewValidationError(field, message string) error {
	e := NewCustomError(ErrValidationFailed, message)
	if field != "" {
		return e.WithDetails(map[string]interface{}{"field": field})
	}
	return e
}

// MessageOf returns the user-facing message of the outermost CustomError in the chain
func MessageOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return ""
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
