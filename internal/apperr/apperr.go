// Package apperr defines the error type shared by all lockin packages.
package apperr

import (
	"fmt"
)

// Error is an application error with a user-facing message and an optional
// underlying cause.
type Error struct {
	Err     error
	parent  *Error
	Message string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap exposes both the cause and the originating sentinel so errors.Is
// matches either.
func (e *Error) Unwrap() []error {
	var errs []error

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	if e.parent != nil {
		errs = append(errs, e.parent)
	}

	return errs
}

// Fmt fills in the message placeholders of a sentinel error. The sentinel
// remains matchable through errors.Is.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		parent:  e,
	}
}

// Wrap attaches an underlying cause to a sentinel error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Err:     err,
		parent:  e,
	}
}
