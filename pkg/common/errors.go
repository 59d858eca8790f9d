package common

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks input rejected before any model call, such as an
// empty focus string or an empty center name handed to the synthesizer.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound marks a lookup for a node name that exists in no layer of
// the current graph. It is a defensive case, never fatal.
var ErrNotFound = errors.New("not found")

// ServiceError wraps a transport, timeout or authentication failure from
// the analysis model. It is recoverable; the caller may retry.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// MalformedResponseError marks a model reply that could not be parsed
// into the AnalysisResult shape even after repair. The last good graph
// is kept when this surfaces.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed analysis response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err is one of the recoverable fetch
// failures (service or parse) rather than a programming error.
func IsRecoverable(err error) bool {
	var se *ServiceError
	var me *MalformedResponseError
	return errors.As(err, &se) || errors.As(err, &me)
}
