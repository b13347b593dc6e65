// Package serrs provides semantic error kinds for the API surface.
//
// Handlers wrap failures with one of the kinds below; the HTTP layer maps a
// kind to a status code in exactly one place via Status. Matching works
// through errors.Is, so storage and validation code can stay free of HTTP
// concerns.
package serrs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a sentinel error category.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// The error taxonomy of the ledger API.
var (
	// ErrValidation indicates malformed or inconsistent input the caller can fix.
	ErrValidation Kind = kind{"VALIDATION"}
	// ErrForbidden indicates the caller is authenticated but not allowed here.
	ErrForbidden Kind = kind{"FORBIDDEN"}
	// ErrNotFound indicates a missing group/expense/user reference.
	ErrNotFound Kind = kind{"NOT_FOUND"}
	// ErrAuth indicates bad credentials or an invalid token.
	ErrAuth Kind = kind{"AUTH"}
	// ErrStore indicates a persistence layer failure. Never retried.
	ErrStore Kind = kind{"STORE"}
)

// Error carries a kind, an optional wrapped cause and a human-readable message.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs an error of the given kind with a formatted message.
func With(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an error of the given kind wrapping a concrete cause.
func Wrap(k Kind, err error, format string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		return e.kind.Error()
	}
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches against the kind sentinel as well as the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

// Message returns the human-readable message, falling back to the full error
// string when no message was attached.
func (e *Error) Message() string {
	if e.msg != "" {
		return e.msg
	}
	return e.Error()
}

// Status maps an error to an HTTP status code. Unrecognized errors are
// treated as internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
