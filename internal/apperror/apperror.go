// Package apperror defines the error taxonomy shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindValidation      Kind = "VALIDATION"
	KindConflict        Kind = "CONFLICT"
	KindNotFound        Kind = "NOT_FOUND"
	KindTooManyRequests Kind = "TOO_MANY_REQUESTS"
	KindInternal        Kind = "INTERNAL"
)

// Kind sentinels, usable with errors.Is.
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "authentication required"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "access denied"}
	ErrValidation   = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "resource conflict"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "resource not found"}
)

// Error carries a stable Kind and a message that is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	// Fields names the offending input fields of a validation error.
	Fields []string
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// MissingFields builds a validation error naming every absent field.
func MissingFields(fields ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "missing required fields",
		Fields:  fields,
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func TooManyRequests(message string) *Error {
	return &Error{Kind: KindTooManyRequests, Message: message}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
