// Package errors provides structured error handling with HTTP status code
// mapping and an echo middleware that turns domain errors into JSON
// responses. No domain error is fatal to the process.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

// ErrorType represents the category of error for metrics and response formatting.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeUnauthorized indicates a missing or invalid credential (HTTP 401)
	TypeUnauthorized ErrorType = "unauthorized"
	// TypeForbidden indicates a valid user attempting a disallowed action (HTTP 403)
	TypeForbidden ErrorType = "forbidden"
	// TypeNotFound indicates resource not found (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeConflict indicates resource conflict (HTTP 409)
	TypeConflict ErrorType = "conflict"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError creates a new validation error (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message, Context: make(map[string]any)}
}

// UnauthorizedError creates a new unauthorized error (HTTP 401).
func UnauthorizedError(message string) *Error {
	return &Error{Type: TypeUnauthorized, Message: message, Context: make(map[string]any)}
}

// ForbiddenError creates a new forbidden error (HTTP 403).
func ForbiddenError(message string) *Error {
	return &Error{Type: TypeForbidden, Message: message, Context: make(map[string]any)}
}

// NotFoundError creates a new not-found error (HTTP 404).
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message, Context: make(map[string]any)}
}

// ConflictError creates a new conflict error (HTTP 409).
func ConflictError(message string) *Error {
	return &Error{Type: TypeConflict, Message: message, Context: make(map[string]any)}
}

// InternalError creates a new internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause, Context: make(map[string]any)}
}

// WithField adds a context field to the error (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse represents the JSON structure sent to clients.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for JSON serialization.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Type:    e.Type,
		Context: e.Context,
	}
}

// domainErrorTypes maps domain sentinel errors to their HTTP category.
var domainErrorTypes = map[error]ErrorType{
	domain.ErrUserNotFound:     TypeNotFound,
	domain.ErrQuestionNotFound: TypeNotFound,
	domain.ErrAnswerNotFound:   TypeNotFound,
	domain.ErrCommentNotFound:  TypeNotFound,

	domain.ErrInvalidRating:   TypeValidation,
	domain.ErrAlreadyAccepted: TypeValidation,
	domain.ErrNotAccepted:     TypeValidation,

	domain.ErrSelfRating:       TypeForbidden,
	domain.ErrNotQuestionOwner: TypeForbidden,
	domain.ErrNotOwner:         TypeForbidden,
	domain.ErrAnswerAccepted:   TypeForbidden,

	domain.ErrUsernameTaken:      TypeConflict,
	domain.ErrInvalidCredentials: TypeUnauthorized,
	domain.ErrInvalidToken:       TypeUnauthorized,
}

// FromDomain converts a domain sentinel error into a structured Error,
// preserving the original as the cause. Unknown errors become internal.
func FromDomain(err error) *Error {
	for sentinel, errType := range domainErrorTypes {
		if errors.Is(err, sentinel) {
			return &Error{
				Type:    errType,
				Message: sentinel.Error(),
				Cause:   err,
				Context: make(map[string]any),
			}
		}
	}
	return InternalError("internal server error", err)
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged. Domain sentinels are
// mapped through FromDomain; anything else wraps as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return FromDomain(err)
}
