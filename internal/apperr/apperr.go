// Package apperr defines the error taxonomy shared by the store, the services and
// the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to react to it.
type Kind int

const (
	KindStorage Kind = iota
	KindValidation
	KindPermissionDenied
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "storage"
	}
}

// Messages shown to callers for kinds that must not leak details.
const (
	MsgPermissionDenied = "access denied"
	MsgUnauthorized     = "invalid credentials"
	MsgStorage          = "internal error"
)

// Error is the concrete error type returned across package boundaries.
// Err holds the underlying cause and is only reachable through Unwrap.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a bad input value on the named field.
func Validation(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// PermissionDenied never carries ids or owners in its message.
func PermissionDenied() *Error {
	return &Error{Kind: KindPermissionDenied, Msg: MsgPermissionDenied}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized uses one fixed message so bad usernames and bad passwords look alike.
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Msg: MsgUnauthorized}
}

// Storage wraps a persistence failure. The cause stays out of Error().
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: MsgStorage, Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf returns the kind of err, treating unknown errors as storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
