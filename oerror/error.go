package oerror

import "fmt"

// Error is the error type returned by fallible operations across yamato. It keeps the formatted
// cause so callers can match wrapped errors with errors.Is and errors.As.
type Error struct {
	Err string

	cause error
}

// New returns a new Error from the format and arguments passed. Any %w verb in format wraps the
// corresponding argument.
func New(format string, args ...any) *Error {
	cause := fmt.Errorf(format, args...)
	return &Error{Err: cause.Error(), cause: cause}
}

func (e *Error) Error() string {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.cause
}
