package errors

import (
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Result payload errors
	ErrCodeMalformedResult ErrorCode = "MALFORMED_RESULT"
	ErrCodeUnknownStatus   ErrorCode = "UNKNOWN_STATUS"
	ErrCodeBloomFailed     ErrorCode = "BLOOM_FAILED"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// LazyError represents a structured error with context
type LazyError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LazyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LazyError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LazyError) WithDetail(key string, value interface{}) *LazyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new LazyError
func New(code ErrorCode, message string) *LazyError {
	return &LazyError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LazyError
func Wrap(err error, code ErrorCode, message string) *LazyError {
	return &LazyError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is reports whether err, or any error it wraps, carries the given code.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		if lazyErr, ok := err.(*LazyError); ok && lazyErr.Code == code {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// GetCode extracts the outermost error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	lazyErr, ok := err.(*LazyError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return lazyErr.Code
}
