package errors

import (
	"fmt"
	"reflect"
	"time"
)

// Details keys set by the variant constructors. Consumers depend on these
// names.
const (
	DetailValidationErrors = "validation_errors"
	DetailWindowSeconds    = "window_seconds"
	DetailMaxRequests      = "max_requests"
	DetailRetryAfter       = "retry_after"
	DetailOriginalError    = "original_error"
	DetailComponent        = "component"
	DetailCurrentMB        = "current_mb"
	DetailMaxMB            = "max_mb"
)

// Validation creates a VALIDATION_ERROR. fields maps each rejected field to
// the reason it was rejected.
func Validation(message string, fields map[string]string, opts ...Option) *Error {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return New(CodeValidation, message, map[string]any{
		DetailValidationErrors: copied,
	}, opts...)
}

// RateLimit creates a RATE_LIMIT_EXCEEDED error for a limit of maxRequests
// per windowSeconds. Callers may retry after one full window.
func RateLimit(windowSeconds, maxRequests int, opts ...Option) *Error {
	return New(CodeRateLimit,
		fmt.Sprintf("Rate limit exceeded: %d requests per %d seconds", maxRequests, windowSeconds),
		map[string]any{
			DetailWindowSeconds: windowSeconds,
			DetailMaxRequests:   maxRequests,
			DetailRetryAfter:    windowSeconds,
		}, opts...)
}

// Processing creates a PROCESSING_ERROR. When original is non-nil its text is
// recorded under original_error and it becomes the Unwrap cause. A typed nil
// pointer stored in original counts as nil.
//
// The original error text is returned to whoever renders the error. Use
// Renderer.RedactCauses when the payload leaves the trust boundary.
func Processing(message string, original error, opts ...Option) *Error {
	var details map[string]any
	if !isNilError(original) {
		details = map[string]any{DetailOriginalError: original.Error()}
		opts = append([]Option{WithCause(original)}, opts...)
	}
	return New(CodeProcessing, message, details, opts...)
}

func isNilError(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Initialization creates an INITIALIZATION_ERROR for the named component.
func Initialization(message, component string, opts ...Option) *Error {
	return New(CodeInitialization, message, map[string]any{
		DetailComponent: component,
	}, opts...)
}

// ResourceLimit creates a MEMORY_LIMIT_EXCEEDED error. Both sizes are in
// megabytes and are shown with one decimal place in the message.
// Sizes must be finite: JSON has no NaN or infinity, so ToJSON fails for them.
func ResourceLimit(currentMB, maxMB float64, opts ...Option) *Error {
	return New(CodeMemoryLimit,
		fmt.Sprintf("Memory usage (%.1fMB) exceeds limit (%.1fMB)", currentMB, maxMB),
		map[string]any{
			DetailCurrentMB: currentMB,
			DetailMaxMB:     maxMB,
		}, opts...)
}

// RetryAfter returns the retry_after detail as a duration. It accepts the
// integer set by RateLimit and the float64 produced by Decode.
func (e *Error) RetryAfter() (time.Duration, bool) {
	v, ok := e.details[DetailRetryAfter]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return time.Duration(n) * time.Second, true
	case int64:
		return time.Duration(n) * time.Second, true
	case float64:
		return time.Duration(n * float64(time.Second)), true
	default:
		return 0, false
	}
}

// ValidationErrors returns the per-field reasons of a VALIDATION_ERROR.
// Returns nil for other codes.
func (e *Error) ValidationErrors() map[string]string {
	v, ok := e.details[DetailValidationErrors]
	if !ok {
		return nil
	}
	result := make(map[string]string)
	switch fields := v.(type) {
	case map[string]string:
		for k, reason := range fields {
			result[k] = reason
		}
	case map[string]any:
		for k, reason := range fields {
			if s, ok := reason.(string); ok {
				result[k] = s
			} else {
				result[k] = fmt.Sprint(reason)
			}
		}
	default:
		return nil
	}
	return result
}
