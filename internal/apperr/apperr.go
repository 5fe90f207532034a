// Package apperr defines the error taxonomy shared by the storage layer and
// the HTTP handlers. Every failure surfaced to a caller carries a Kind so the
// boundary can map it to a status code without string matching.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for boundary handling.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindDuplicate         Kind = "duplicate"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindTransient         Kind = "transient"
	KindInternal          Kind = "internal"
)

// Error is a kinded error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error        { return New(KindValidation, message) }
func Duplicate(message string) *Error         { return New(KindDuplicate, message) }
func NotFound(message string) *Error          { return New(KindNotFound, message) }
func InvalidTransition(message string) *Error { return New(KindInvalidTransition, message) }
func Unauthorized(message string) *Error      { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error         { return New(KindForbidden, message) }
func Transient(message string) *Error         { return New(KindTransient, message) }

// KindOf returns the kind of err, or KindInternal when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to the status code written at the boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
