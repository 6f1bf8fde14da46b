package errors

import (
	"errors"
	"fmt"
	"time"
)

// Wrap wraps an error with additional context while preserving the error chain.
// If err is nil, Wrap returns nil.
// If err is already an *Error, the wrapper keeps its code, category and details.
// Otherwise the result is a PROCESSING_ERROR recording err as original_error.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var taxErr *Error
	if errors.As(err, &taxErr) {
		wrapped := &Error{
			code:      taxErr.code,
			category:  taxErr.category,
			message:   message,
			details:   taxErr.Details(),
			cause:     err,
			timestamp: time.Now(),
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	return Processing(message, err, opts...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// As extracts the first *Error from an error chain.
func As(err error) (*Error, bool) {
	var taxErr *Error
	if errors.As(err, &taxErr) {
		return taxErr, true
	}
	return nil, false
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code ErrorCode) bool {
	var taxErr *Error
	if errors.As(err, &taxErr) {
		return taxErr.code == code
	}
	return false
}

// CodeOf extracts the error code from an error, if available.
// Returns empty string if err carries no *Error.
func CodeOf(err error) ErrorCode {
	var taxErr *Error
	if errors.As(err, &taxErr) {
		return taxErr.code
	}
	return ""
}

// IsRetryable checks if the error is retryable.
func IsRetryable(err error) bool {
	var taxErr *Error
	if errors.As(err, &taxErr) {
		return taxErr.Retryable()
	}
	// Default to not retryable for foreign errors
	return false
}

// Cause returns the root cause of the error chain.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := unwrapper.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}

// RecoverPanic converts a recovered panic value into a PROCESSING_ERROR.
// Returns nil if recovered is nil.
func RecoverPanic(recovered any) *Error {
	if recovered == nil {
		return nil
	}
	var cause error
	switch v := recovered.(type) {
	case error:
		cause = v
	case string:
		cause = errors.New(v)
	default:
		cause = fmt.Errorf("%v", v)
	}
	return Processing("recovered from panic", cause)
}
