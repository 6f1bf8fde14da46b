package errors

// ErrorCategory classifies errors by their nature and retry semantics.
// Categories are not part of the wire format.
type ErrorCategory string

// Error categories define how errors should be handled.
const (
	// CategoryPermanent indicates failures where retry will not help.
	// Examples: malformed request fields.
	CategoryPermanent ErrorCategory = "permanent"

	// CategoryResource indicates resource exhaustion.
	// Examples: request rate exceeded, memory ceiling reached.
	CategoryResource ErrorCategory = "resource"

	// CategoryInternal indicates failures inside the engine itself.
	// Examples: inference failure, component failed to start.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// IsRetryable returns true if errors in this category may succeed on retry.
func (c ErrorCategory) IsRetryable() bool {
	return c == CategoryResource
}

// ErrorCode identifies the kind of failure. Callers branch on it.
type ErrorCode string

// Fixed error codes. These strings are part of the wire format.
const (
	CodeValidation     ErrorCode = "VALIDATION_ERROR"      // Request failed field validation
	CodeRateLimit      ErrorCode = "RATE_LIMIT_EXCEEDED"   // Too many requests in the window
	CodeProcessing     ErrorCode = "PROCESSING_ERROR"      // Processing of a request failed
	CodeInitialization ErrorCode = "INITIALIZATION_ERROR"  // A component failed to initialize
	CodeMemoryLimit    ErrorCode = "MEMORY_LIMIT_EXCEEDED" // Memory usage above the configured ceiling
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// Known reports whether c is one of the fixed codes.
func (c ErrorCode) Known() bool {
	_, ok := codeDescriptions[c]
	return ok
}

// DefaultCategory returns the default category for an error code.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case CodeValidation:
		return CategoryPermanent
	case CodeRateLimit, CodeMemoryLimit:
		return CategoryResource
	default:
		return CategoryInternal
	}
}

// DefaultRetryable returns whether this error code is typically retryable.
func (c ErrorCode) DefaultRetryable() bool {
	return c.DefaultCategory().IsRetryable()
}

var codeDescriptions = map[ErrorCode]string{
	CodeValidation:     "validation failed",
	CodeRateLimit:      "rate limit exceeded",
	CodeProcessing:     "processing failed",
	CodeInitialization: "initialization failed",
	CodeMemoryLimit:    "memory limit exceeded",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
