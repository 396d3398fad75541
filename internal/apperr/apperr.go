// Package apperr defines the closed set of error kinds surfaced by the
// service layer. Handlers switch on the kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnauthenticated means no caller identity was present.
	KindUnauthenticated Kind = iota
	// KindForbidden means the caller lacks organization membership or role.
	KindForbidden
	// KindNotFound means a referenced user or file record is absent.
	KindNotFound
	// KindInvalid means the request payload failed validation.
	KindInvalid
)

// Kind sentinels for errors.Is checks.
var (
	ErrUnauthenticated = &Error{kind: KindUnauthenticated, msg: "you must be logged in"}
	ErrForbidden       = &Error{kind: KindForbidden, msg: "you do not have access"}
	ErrNotFound        = &Error{kind: KindNotFound, msg: "not found"}
	ErrInvalid         = &Error{kind: KindInvalid, msg: "invalid request"}
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Is matches any *Error carrying the same kind, so
// errors.Is(err, apperr.ErrForbidden) works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

func Unauthenticated(msg string) *Error {
	return &Error{kind: KindUnauthenticated, msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{kind: KindForbidden, msg: msg}
}

func NotFound(format string, args ...any) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) *Error {
	return &Error{kind: KindInvalid, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, unwrapping as needed.
// The second return is false for errors outside the closed set.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}
