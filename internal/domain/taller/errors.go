package taller

import "errors"

// Sentinel kinds for comparison errors.
var (
	// ErrPersonNotFound means the search succeeded but matched nobody.
	ErrPersonNotFound = errors.New("person not found")
	// ErrHeightNotFound means the first match has no usable height.
	ErrHeightNotFound = errors.New("height not found")
	// ErrUnexpected matches any *UnexpectedError via errors.Is.
	ErrUnexpected = errors.New("unexpected error")
)

// UnexpectedError wraps a search failure (transport, status or decoding).
type UnexpectedError struct {
	Cause error
}

func (e *UnexpectedError) Error() string {
	if e.Cause == nil {
		return ErrUnexpected.Error()
	}
	return ErrUnexpected.Error() + ": " + e.Cause.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Cause }

// Is reports ErrUnexpected as a match so callers need not use errors.As.
func (e *UnexpectedError) Is(target error) bool { return target == ErrUnexpected }
