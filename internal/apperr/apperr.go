package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the closed error taxonomy for the back-office core. Every business
// failure is one of these kinds; the HTTP layer maps on Kind, never on message
// text.
type Error struct {
	kind    Kind
	message string
	err     error
}

type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindAuthorization     Kind = "AUTHORIZATION_ERROR"
	KindSystem            Kind = "SYSTEM_ERROR"
)

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Kind() Kind      { return e.kind }
func (e *Error) Message() string { return e.message }
func (e *Error) Unwrap() error   { return e.err }

// HTTPStatus returns the status code this error kind maps to.
func (e *Error) HTTPStatus() int {
	switch e.kind {
	case KindValidation, KindInvalidTransition:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) *Error {
	return &Error{kind: KindValidation, message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{kind: KindNotFound, message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{kind: KindConflict, message: fmt.Sprintf(format, args...)}
}

func InvalidTransition(format string, args ...any) *Error {
	return &Error{kind: KindInvalidTransition, message: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) *Error {
	return &Error{kind: KindAuthorization, message: fmt.Sprintf(format, args...)}
}

// System wraps an infrastructure failure (storage, transaction) without leaking
// internal detail into the client-facing message.
func System(err error) *Error {
	return &Error{kind: KindSystem, message: "internal error", err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == k
}

// From extracts the *Error from err, wrapping unknown errors as System.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return System(err)
}
