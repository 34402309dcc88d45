// Package apperr is the closed set of classified failures shared by the
// services. The HTTP layer maps each Kind to a status code; anything that is
// not an *Error is treated as Internal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindBadRequest   Kind = "bad_request"
	KindInternal     Kind = "internal"
)

// Error carries a kind and a caller-facing message. It never holds the
// underlying cause, so nothing internal can leak through it.
type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Conflict(message string) *Error     { return New(KindConflict, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func BadRequest(message string) *Error   { return New(KindBadRequest, message) }

func (e *Error) Error() string { return e.Message }

// Is reports equality by kind and message, so two independently raised
// errors with the same content match under errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func (e *Error) String() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func HasKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
