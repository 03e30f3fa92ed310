// Package apperr defines the classified error taxonomy used across RealShop.
//
// Every guard violation or dependency failure resolves to an *Error carrying
// a Kind the caller can branch on, plus a short human-readable message.
// Controllers translate the Kind to an HTTP status via response.FromError.
//
//	if err := svc.UpdateOrder(...); err != nil {
//	    response.FromError(w, err) // 404 / 403 / 409 / ...
//	    return
//	}
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind int

const (
	// KindUnknown is the zero value; unclassified failures map to a
	// generic "Server error".
	KindUnknown Kind = iota

	// KindValidation: missing or malformed input (empty order, bad payload).
	KindValidation

	// KindNotFound: the referenced entity does not exist.
	KindNotFound

	// KindForbidden: authenticated but not permitted (wrong owner or role).
	KindForbidden

	// KindInvalidState: operation not legal in the current lifecycle state.
	KindInvalidState

	// KindUnauthenticated: missing or invalid credential.
	KindUnauthenticated

	// KindUpstream: an external dependency (image storage, mail) failed.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string // short, user-visible
	Err     error  // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a user-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error while keeping it in the chain.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Convenience constructors for the common kinds.

func Validation(message string) *Error      { return New(KindValidation, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func InvalidState(message string) *Error    { return New(KindInvalidState, message) }
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// Upstream wraps a dependency failure (storage, mail, database).
func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

// KindOf extracts the Kind from any error in the chain.
// Returns KindUnknown for nil or unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the user-visible message, or a generic fallback for
// unclassified errors so internals never leak to clients.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Server error"
}
