// Package serrors provides semantic error kinds and a wrapper error type that
// carries a kind, an optional cause and a human-readable message. Callers map
// kinds to transport status codes without string matching.
package serrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a semantic error category. Only NewKind creates them.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a kind. The name doubles as the error code sent to API
// clients, so it is upper snake case by convention.
func NewKind(name string) Kind { return kind{s: name} }

// Default Kinds provide the categories the service layers share. Domain packages
// declare their own kinds with NewKind next to the code that returns them.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the caller is authenticated but not allowed to perform the operation.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrBadRequest indicates the client sent a malformed request.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict indicates a state conflict.
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal indicates an internal server error.
	ErrInternal = NewKind("INTERNAL")
	// ErrUnavailable indicates a dependency is temporarily unavailable.
	ErrUnavailable = NewKind("UNAVAILABLE")
)

// KindOf returns the first Kind found in the error chain of err, or nil when
// the chain carries none. A bare Kind sentinel is returned as is.
func KindOf(err error) Kind {
	for err != nil {
		switch e := err.(type) { //nolint: errorlint
		case Kind:
			return e
		case *Error:
			if e.kind != nil {
				return e.kind
			}
		}

		if multi, ok := err.(interface{ Unwrap() []error }); ok { //nolint: errorlint
			for _, inner := range multi.Unwrap() {
				if k := KindOf(inner); k != nil {
					return k
				}
			}

			return nil
		}

		err = errors.Unwrap(err)
	}

	return nil
}

// IsOneOf reports whether err matches any of the given kinds.
func IsOneOf(err error, kinds ...Kind) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}

	return false
}

// Error carries a Kind, an optional cause and a message. errors.Is and
// errors.As match both the kind and anything in the cause chain, so
// errors.Is(err, psychro.ErrOutOfRange) holds however deeply err is wrapped.
//
// The message is what clients see; Error() appends the cause after it.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With returns an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap is With plus a cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly returns a bare error of kind k.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 2)
	if e.msg != "" {
		parts = append(parts, e.msg)
	}
	if e.err != nil {
		parts = append(parts, e.err.Error())
	}
	if len(parts) == 0 && e.kind != nil {
		return e.kind.Error()
	}
	if len(parts) == 0 {
		return "unknown error"
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) || (e.err != nil && errors.Is(e.err, target))
}

func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) || (e.err != nil && errors.As(e.err, target))
}

// Kind returns the kind of e, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without the cause. API responses use it so
// internal causes never leak to clients.
func (e *Error) Message() string { return e.msg }
