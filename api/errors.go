// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for speedcore.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	// ErrInvalidCapacity is returned when a queue or arena is constructed with an unusable capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvalidWorkerCount is returned when a pool is constructed without workers.
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrPoolClosed is returned by Submit once shutdown has been initiated.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("task is nil")

	// ErrAllocationFailed indicates the arena has no room left for the request.
	ErrAllocationFailed = errors.New("arena allocation failed")

	// ErrStaleRegion indicates a region was used after its arena was reset.
	ErrStaleRegion = errors.New("arena region is stale")

	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeInvalidCapacity
	ErrCodeResourceExhausted
	ErrCodeClosed
	ErrCodeStale
	ErrCodeInternal
)

// String returns a short name for the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeInvalidCapacity:
		return "invalid_capacity"
	case ErrCodeResourceExhausted:
		return "resource_exhausted"
	case ErrCodeClosed:
		return "closed"
	case ErrCodeStale:
		return "stale"
	case ErrCodeInternal:
		return "internal"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error represents a structured error with code and context.
// It wraps one of the sentinel errors above so errors.Is keeps working.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap returns the sentinel the error was built from, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapError creates a structured error around a sentinel, using its text as the message.
func WrapError(code ErrorCode, cause error) *Error {
	e := NewError(code, cause.Error())
	e.cause = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// TaskPanicError carries a panic recovered from a task run by a worker.
type TaskPanicError struct {
	Value any
	Stack []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
