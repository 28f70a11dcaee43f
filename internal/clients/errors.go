package clients

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned before any network I/O when an
// operation requires a credential and none is present.
var ErrUnauthenticated = errors.New("unauthenticated: no credential")

// NetworkError wraps a transport-level failure (no usable response).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a 4xx/5xx response. Reason carries the backend's
// message when the body had one, otherwise it is empty and callers
// fall back to a generic per-operation string.
type ServerError struct {
	Op     string
	Status int
	Reason string
}

func (e *ServerError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: server rejected (%d): %s", e.Op, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s: server rejected (%d)", e.Op, e.Status)
}
