package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the service layer wraps exactly one of these.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrReferenceNotFound = errors.New("referenced resource not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknownRole       = errors.New("unknown role")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrForbidden = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Error codes carried by CustomError. They end up in the API error envelope.
const (
	CodeNotFound           = "RES_001"
	CodeDuplicateKey       = "RES_002"
	CodeReferenceNotFound  = "RES_003"
	CodeUnknownRole        = "RES_004"
	CodeInvalidCredentials = "AUTH_001"
	CodeUnauthenticated    = "AUTH_008"
	CodeForbidden          = "AUTH_009"
	CodeValidationFailed   = "VAL_001"
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewNotFoundError reports a failed lookup of kind by id.
func NewNotFoundError(kind string, id interface{}) error {
	return NewCustomError(ErrNotFound, fmt.Sprintf("%s not found with id: %v", kind, id)).
		WithCode(CodeNotFound).
		WithDetails(map[string]interface{}{"kind": kind, "id": id})
}

// NewReferenceNotFoundError reports a foreign reference in a request that does not resolve.
func NewReferenceNotFoundError(kind string, id interface{}) error {
	return NewCustomError(ErrReferenceNotFound, fmt.Sprintf("%s not found with id: %v", kind, id)).
		WithCode(CodeReferenceNotFound).
		WithDetails(map[string]interface{}{"kind": kind, "id": id})
}

// NewDuplicateKeyError reports a unique field collision.
func NewDuplicateKeyError(field string, value interface{}) error {
	return NewCustomError(ErrDuplicateKey, fmt.Sprintf("%s '%v' already exists", field, value)).
		WithCode(CodeDuplicateKey).
		WithDetails(map[string]interface{}{"field": field, "value": value})
}

// NewUnknownRoleError reports a role name with no matching role row.
func NewUnknownRoleError(name string) error {
	return NewCustomError(ErrUnknownRole, fmt.Sprintf("role %s is not found", name)).
		WithCode(CodeUnknownRole).
		WithDetails(map[string]interface{}{"role": name})
}

// NewValidationError reports malformed input.
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message).WithCode(CodeValidationFailed)
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return NewCustomError(ErrForbidden, message).WithCode(CodeForbidden)
}

// NewUnauthenticatedError wraps the reason a token was rejected.
func NewUnauthenticatedError(reason error) error {
	if reason == nil {
		return NewCustomError(ErrUnauthenticated, ErrUnauthenticated.Error()).WithCode(CodeUnauthenticated)
	}
	return &CustomError{
		Err:     fmt.Errorf("%w: %w", ErrUnauthenticated, reason),
		Message: ErrUnauthenticated.Error() + ": " + reason.Error(),
		Code:    CodeUnauthenticated,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Detail returns a detail value stored on the first CustomError in err's chain.
func Detail(err error, key string) (interface{}, bool) {
	var ce *CustomError
	if !errors.As(err, &ce) || ce.Details == nil {
		return nil, false
	}
	v, ok := ce.Details[key]
	return v, ok
}
