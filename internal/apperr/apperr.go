// Package apperr holds the error taxonomy shared by the domain packages and the
// HTTP layer. Domain code returns *Error values; transports map Kind to a status.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindPermissionDenied
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Machine-readable codes surfaced on the wire.
const (
	CodeInvalidRating      = "invalid_rating"
	CodeEmptyUpdate        = "empty_update"
	CodeInvalidInput       = "invalid_input"
	CodeRestaurantNotFound = "restaurant_not_found"
	CodeReviewNotFound     = "review_not_found"
	CodeReviewExists       = "review_exists"
	CodeAlreadyClaimed     = "already_claimed"
	CodeNotReviewAuthor    = "not_review_author"
	CodeNotRestaurantOwner = "not_restaurant_owner"
	CodeUnauthorized       = "unauthorized"
)

// Error is a classified, recoverable error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(code, format string, args ...any) *Error {
	return newError(KindValidation, code, format, args...)
}

func NotFound(code, format string, args ...any) *Error {
	return newError(KindNotFound, code, format, args...)
}

func Conflict(code, format string, args ...any) *Error {
	return newError(KindConflict, code, format, args...)
}

func PermissionDenied(code, format string, args ...any) *Error {
	return newError(KindPermissionDenied, code, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return newError(KindUnauthorized, CodeUnauthorized, format, args...)
}

// Wrap attaches a cause to e and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the machine code of err, or "" if err is not classified.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
