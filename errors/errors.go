package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// Error is the single concrete error type of the taxonomy. The variant is
// identified by its code; there are no per-variant Go types.
//
// An Error is immutable once constructed. Accessors that return maps return
// copies.
type Error struct {
	code      ErrorCode
	category  ErrorCategory
	message   string
	details   map[string]any
	cause     error
	timestamp time.Time
}

var (
	_ error            = (*Error)(nil)
	_ json.Marshaler   = (*Error)(nil)
	_ json.Unmarshaler = (*Error)(nil)
)

// Error returns "[CODE] message", followed by ": cause" when a cause is set.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.category
}

// Retryable returns whether this error is retryable.
func (e *Error) Retryable() bool {
	return e.category.IsRetryable()
}

// Message returns the human-readable message without the cause.
func (e *Error) Message() string {
	return e.message
}

// Details returns a copy of the structured details. Never nil.
func (e *Error) Details() map[string]any {
	return copyDetails(e.details)
}

// Detail returns a copy of a single details value.
func (e *Error) Detail(key string) (any, bool) {
	v, ok := e.details[key]
	return copyValue(v), ok
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Timestamp returns when the error was constructed.
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// Option is a functional option for configuring an Error.
type Option func(*Error)

// WithCause sets the underlying cause. The cause is reachable through
// Unwrap but is not rendered on the wire.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// WithTimestamp sets a custom construction timestamp.
func WithTimestamp(t time.Time) Option {
	return func(e *Error) {
		e.timestamp = t
	}
}

// WithCategory overrides the default category for the code.
func WithCategory(cat ErrorCategory) Option {
	return func(e *Error) {
		e.category = cat
	}
}

// New creates an Error with a caller-chosen code. The details map is deep
// copied; nil details are stored as an empty map.
func New(code ErrorCode, message string, details map[string]any, opts ...Option) *Error {
	e := &Error{
		code:      code,
		category:  code.DefaultCategory(),
		message:   message,
		details:   copyDetails(details),
		timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates an Error with a formatted message and no details.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// FromCode creates an error with the default description for the code.
func FromCode(code ErrorCode, opts ...Option) *Error {
	return New(code, code.Description(), nil, opts...)
}

// copyDetails deep copies a details map. Nested maps and slices are copied so
// that no caller can reach the error's own state. Never returns nil.
func copyDetails(details map[string]any) map[string]any {
	result := make(map[string]any, len(details))
	for k, v := range details {
		result[k] = copyValue(v)
	}
	return result
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyDetails(val)
	case map[string]string:
		m := make(map[string]string, len(val))
		for k, s := range val {
			m[k] = s
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = copyValue(item)
		}
		return s
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
