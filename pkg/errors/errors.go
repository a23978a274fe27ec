// Package errors provides typed errors for readme-llm
package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error (missing credential, bad value)
	ErrConfig ErrorType = iota
	// ErrTemplate indicates the prompt template could not be loaded
	ErrTemplate
	// ErrModel indicates the generative model call failed
	ErrModel
	// ErrIO indicates a file system error outside per-file reads
	ErrIO
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrCancelled indicates the run was interrupted
	ErrCancelled
)

// Well-known model error messages.
const (
	MsgRateLimited = "rate_limit_exceeded"
	MsgUpstream    = "upstream_unavailable"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess   = 0
	ExitFailure   = 1
	ExitModel     = 2
	ExitCancelled = 130
)

// Error is the base error type for all readme-llm errors
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var rlErr *Error
	if err == nil {
		return false
	}
	if errors.As(err, &rlErr) {
		return rlErr.Type == errType
	}
	return false
}

// IsRetryable reports whether a caller could reasonably retry the failed
// operation. The run itself never retries.
func IsRetryable(err error) bool {
	var rlErr *Error
	if !errors.As(err, &rlErr) {
		return false
	}

	switch rlErr.Type {
	case ErrModel:
		return rlErr.Message == MsgRateLimited || rlErr.Message == MsgUpstream
	default:
		return false
	}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) || IsType(err, ErrCancelled) {
		return ExitCancelled
	}
	if IsType(err, ErrModel) {
		return ExitModel
	}
	return ExitFailure
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrTemplate:
		return "TEMPLATE"
	case ErrModel:
		return "MODEL"
	case ErrIO:
		return "IO"
	case ErrValidation:
		return "VALIDATION"
	case ErrCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(ErrConfig, message, cause)
}

// TemplateError creates a prompt template error
func TemplateError(message string, cause error) *Error {
	return New(ErrTemplate, message, cause)
}

// ModelError creates a model call error
func ModelError(message string, cause error) *Error {
	return New(ErrModel, message, cause)
}

// IOError creates a file system error
func IOError(message string, cause error) *Error {
	return New(ErrIO, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *Error {
	return New(ErrValidation, message, cause)
}

// CancelledError creates a cancellation error
func CancelledError(message string, cause error) *Error {
	return New(ErrCancelled, message, cause)
}
