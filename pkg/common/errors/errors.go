package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the gowork library

var (
	// ErrChannelClosed indicates that an operation was attempted on a closed channel
	ErrChannelClosed = errors.New("channel is closed")

	// ErrChannelFull indicates a non-blocking put found the channel buffer full
	ErrChannelFull = errors.New("channel buffer is full")

	// ErrTimeout indicates that a blocking wait exceeded its deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrPoolClosed indicates a submission arrived after pool shutdown began
	ErrPoolClosed = errors.New("pool is shut down")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// TaskError wraps a failure raised by a task body. The failure is attached to
// the task's future and never crashes the executing worker.
type TaskError struct {
	// TaskID identifies the failed task.
	TaskID string

	// Cause is the error returned (or the panic recovered) by the task body.
	Cause error

	// Stack holds the stack trace when the failure came from a panic.
	Stack []byte
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	if len(e.Stack) > 0 {
		return fmt.Sprintf("task %s panicked: %v", e.TaskID, e.Cause)
	}
	return fmt.Sprintf("task %s failed: %v", e.TaskID, e.Cause)
}

// Unwrap returns the underlying cause, preserving errors.Is/As chains.
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// NewTaskError wraps cause as a task failure for the given task ID.
func NewTaskError(taskID string, cause error) *TaskError {
	return &TaskError{TaskID: taskID, Cause: cause}
}

// ValidationError describes an invalid constructor or configuration parameter.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns ErrInvalidConfiguration, so callers can test for the
// category with errors.Is without matching the concrete type.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrChannelFull)
}

// IsTemporary returns true if the error indicates a temporary condition
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrChannelFull)
}
