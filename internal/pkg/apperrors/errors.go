package apperrors

import "errors"

// Error kinds. Every error surfaced by a service wraps exactly one of
// these so the transport layer can map it to a status category.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrPrecondition = errors.New("precondition failed")
	ErrDependency   = errors.New("dependency failure")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Request workflow errors
var (
	ErrRequestNotFound     = errors.New("project request not found")
	ErrActiveRequestExists = errors.New("member already has an active project request")
)

// Document workflow errors
var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentTypeNotFound = errors.New("document type not found")
	ErrRejectReasonRequired = errors.New("reject reason is required")
)

// Release errors
var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectAlreadyComplete = errors.New("project is already completed")
	ErrDocumentsMissing       = errors.New("required documents are not fully approved")
	ErrCompleteReportNotFound = errors.New("complete report not available")
)

// User / catalog errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrTeacherNotFound     = errors.New("teacher not found")
	ErrProjectTypeNotFound = errors.New("project type not found")
	ErrOldProjectNotFound  = errors.New("old project not found")
	ErrFormNotFound        = errors.New("document form not found")
)

// CustomError carries an error kind plus request-specific context.
type CustomError struct {
	Err     error
	Message string
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

// Unwrap exposes the underlying kind to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error with a message.
func NewValidationError(message string) *CustomError {
	return &CustomError{Err: ErrValidation, Message: message}
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) *CustomError {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewPreconditionError creates a precondition error with a message.
func NewPreconditionError(message string) *CustomError {
	return &CustomError{Err: ErrPrecondition, Message: message}
}

// NewDependencyError wraps an unexpected store failure.
func NewDependencyError(cause error, message string) *CustomError {
	return &CustomError{Err: errors.Join(ErrDependency, cause), Message: message}
}
