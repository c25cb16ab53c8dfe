package errors

import (
	"fmt"
)

// MalformedResult creates an error for a result payload that cannot be reconciled
func MalformedResult(reason string) *LazyError {
	return New(ErrCodeMalformedResult, fmt.Sprintf("malformed result: %s", reason))
}

// UnknownStatus creates an error for a status outside the known enumeration
func UnknownStatus(value string) *LazyError {
	return New(ErrCodeUnknownStatus, fmt.Sprintf("unknown status %q", value)).
		WithDetail("status", value)
}

// BloomFailed creates an error for a node whose children could not be materialized
func BloomFailed(err error) *LazyError {
	return Wrap(err, ErrCodeBloomFailed, "failed to materialize children")
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LazyError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(path string, err error) *LazyError {
	return Wrap(err, ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", path)).
		WithDetail("path", path)
}
