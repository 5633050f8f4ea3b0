package forum

import (
	"errors"
	"fmt"
)

// Kind classifies a forum error so the API layer can map it to a
// deterministic response code.
type Kind int

const (
	// KindInternal is any failure not caused by the caller
	KindInternal Kind = iota
	// KindInvalidInput is a malformed or out-of-range field
	KindInvalidInput
	// KindNotFound is a post or user that does not resolve
	KindNotFound
	// KindAlreadyExists is a duplicate unique value, e.g. email
	KindAlreadyExists
	// KindBadCredentials is a failed login; a logical result, not a fault
	KindBadCredentials
)

// Error is a classified forum error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound returns a KindNotFound error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// InvalidInput returns a KindInvalidInput error
func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// AlreadyExists returns a KindAlreadyExists error
func AlreadyExists(message string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: message}
}

// BadCredentials returns a KindBadCredentials error
func BadCredentials(message string) *Error {
	return &Error{Kind: KindBadCredentials, Message: message}
}

// Internal wraps an unexpected failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// MessageOf extracts the caller-facing message from err
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "internal error"
}
