// Package errs defines the error taxonomy surfaced to API callers.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an error for status mapping and response shaping.
type Kind int

const (
	KindValidation Kind = iota + 1 // malformed or rule-violating input, field-scoped
	KindConflict                   // state-dependent rejection (duplicate add, self-subscribe)
	KindNotFound
	KindForbidden
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Field   string // set for validation errors
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the kind of err, or 0 for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps an error to the status code it should be reported with.
// Untyped errors are server errors.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// FromDB re-reports storage errors that have caller-facing meaning. A
// unique-constraint violation that escaped a racy pre-check becomes a
// conflict rather than a generic server error.
func FromDB(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKey(err) {
		return Conflict(conflictMessage)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("not found")
	}
	return err
}

// isDuplicateKey covers drivers that predate gorm's error translation.
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
