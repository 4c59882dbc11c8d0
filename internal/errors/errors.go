// Package errors provides structured error handling with HTTP status code mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an error for metrics and response formatting.
type Type string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation Type = "validation"
	// TypeNotFound indicates resource not found (HTTP 404)
	TypeNotFound Type = "not_found"
	// TypeConflict indicates resource conflict (HTTP 409)
	TypeConflict Type = "conflict"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal Type = "internal"
)

// Error is a structured error with a type, message, optional cause, and fields.
type Error struct {
	Type    Type
	Message string
	Cause   error
	Fields  map[string]any
}

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

// HTTPStatus returns the HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithField attaches a context field to the error (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// Validation creates a new validation error (HTTP 400).
func Validation(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// NotFound creates a new not-found error (HTTP 404).
func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// Conflict creates a new conflict error (HTTP 409).
func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

// Internal creates a new internal error (HTTP 500).
func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// Response is the JSON structure sent to clients.
type Response struct {
	Error  string         `json:"error"`
	Type   Type           `json:"type"`
	Fields map[string]any `json:"fields,omitempty"`
}

// ToResponse converts an Error to its client representation.
func (e *Error) ToResponse() Response {
	return Response{
		Error:  e.Message,
		Type:   e.Type,
		Fields: e.Fields,
	}
}

// From converts any error into a structured *Error. Already-structured errors
// are returned unchanged; everything else becomes an internal error.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}

	return Internal("internal server error", err)
}
