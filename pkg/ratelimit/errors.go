package ratelimit

import (
	"errors"
	"fmt"
)

// ErrNonNumeric indicates that the counter store returned a value that could
// not be parsed as an integer.
var ErrNonNumeric = errors.New("non-numeric result")

// ConfigError indicates that the effective limit could not be resolved:
// the tier is missing from the policy registry or the resolved window is
// not a positive number of seconds.
type ConfigError struct {
	Message string
}

// Error returns the configuration failure message.
func (e *ConfigError) Error() string {
	return e.Message
}

// NewConfigError creates a ConfigError with the given message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// StoreError indicates a counter-store transport failure, a non-numeric
// reply, or a connect failure. The failing operation name is kept for
// logging; the wrapped cause is available via errors.Unwrap.
type StoreError struct {
	Op  string
	Err error
}

// Error returns the store failure message.
func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("counter store %s failed", e.Op)
	}
	return fmt.Sprintf("counter store %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a StoreError for the given operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
