package swapi

import (
	"errors"
	"fmt"
)

// Sentinel kinds for SWAPI client errors.
var (
	ErrConfiguration = errors.New("swapi: invalid client configuration")
	ErrRequestFailed = errors.New("swapi: request failed")
	ErrDecodeFailed  = errors.New("swapi: decode response failed")
)

// StatusError reports a non-2xx response from the upstream.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
