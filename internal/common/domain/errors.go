package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for transport-layer mapping.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindInvalidRange    ErrorKind = "invalid_range"
	KindNotFound        ErrorKind = "not_found"
	KindOverlapConflict ErrorKind = "overlap_conflict"
	KindConflict        ErrorKind = "conflict"
	KindInvalidState    ErrorKind = "invalid_state"
	KindForbidden       ErrorKind = "forbidden"
	KindUnauthorized    ErrorKind = "unauthorized"
)

// Error is a typed domain error carrying a kind and a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewInvalidRangeError creates an error for an empty or inverted date range.
func NewInvalidRangeError(message string) *Error {
	return &Error{Kind: KindInvalidRange, Message: message}
}

// NewNotFoundError creates a not-found error for a resource and identifier.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %s not found", resource, id)}
}

// NewOverlapConflictError creates an error for a date range that intersects
// days already held by another active reservation.
func NewOverlapConflictError(message string) *Error {
	return &Error{Kind: KindOverlapConflict, Message: message}
}

// NewConflictError creates an error for a write that lost a concurrent race.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidStateError creates an error for a disallowed state transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the error's kind, or an empty kind for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsOverlapConflict reports whether err is an overlap-conflict domain error.
func IsOverlapConflict(err error) bool { return IsKind(err, KindOverlapConflict) }

// IsConflict reports whether err is a concurrency-conflict domain error.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// IsInvalidRange reports whether err is an invalid-range domain error.
func IsInvalidRange(err error) bool { return IsKind(err, KindInvalidRange) }
