// Package apperrors defines the error taxonomy shared by services and
// handlers. Services classify failures with a Kind; handlers translate the
// Kind to an HTTP status without inspecting error strings.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service failure.
type Kind int

const (
	Internal Kind = iota
	Conflict
	NotFound
	BadRequest
	InvalidCredentials
	Forbidden
	Unauthorized
)

// Error carries a Kind plus a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns a classified error with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt-style formatting.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// StatusCode maps a classified error to its HTTP status. Conflict maps to
// 400 because the published API reports duplicate registrations as a bad
// request rather than 409.
func StatusCode(err error) int {
	switch KindOf(err) {
	case Conflict, BadRequest, InvalidCredentials:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to surface to a client. Internal
// errors are masked so no storage or library detail crosses the boundary.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Server error"
}
