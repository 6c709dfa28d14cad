// Package apperr defines the error taxonomy shared by the resolver, the
// mutators and the HTTP handlers. Each kind maps to exactly one HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindStoreFailure Kind = iota
	KindInvalidInput
	KindMissingContext
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMissingContext:
		return "missing_context"
	case KindNotFound:
		return "not_found"
	default:
		return "store_failure"
	}
}

// Error carries a kind, a client-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput reports a missing or blank required field.
func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// MissingContext reports a slug lookup without a resolvable parent.
func MissingContext(msg string) error {
	return &Error{Kind: KindMissingContext, Message: msg}
}

// NotFound reports that no document matched.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// StoreFailure wraps an underlying store or connection error. The cause's
// message is passed through to the client.
func StoreFailure(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStoreFailure, Err: err}
}

// KindOf returns the kind of err. Errors outside the taxonomy are treated
// as store failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// Is reports whether err is of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Status maps err to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindMissingContext:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
