// Package errors provides the error taxonomy that intelkit returns to its
// callers. Every error carries a fixed machine-readable code, a human-readable
// message and structured details, and renders itself as a self-describing
// payload that can be returned to an external caller as-is.
//
// # Error Codes
//
// One constructor exists per fixed code:
//
//   - VALIDATION_ERROR: Validation(message, fields)
//   - RATE_LIMIT_EXCEEDED: RateLimit(windowSeconds, maxRequests)
//   - PROCESSING_ERROR: Processing(message, original)
//   - INITIALIZATION_ERROR: Initialization(message, component)
//   - MEMORY_LIMIT_EXCEEDED: ResourceLimit(currentMB, maxMB)
//
// New accepts any code for cases the fixed set does not cover.
//
// # Usage
//
// Return an error:
//
//	if len(req.Events) == 0 {
//	    return errors.Validation("bad input", map[string]string{"events": "must not be empty"})
//	}
//
// Branch on the code:
//
//	if e, ok := errors.As(err); ok && e.Code() == errors.CodeRateLimit {
//	    wait, _ := e.RetryAfter()
//	    time.Sleep(wait)
//	}
//
// # Wire Format
//
// ToMap and ToJSON produce a flat object:
//
//	{
//	  "error": true,
//	  "errorCode": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded: 100 requests per 60 seconds",
//	  "details": {"window_seconds": 60, "max_requests": 100, "retry_after": 60},
//	  "timestamp": "2024-03-01T14:05:09+0100"
//	}
//
// Consumers must not depend on key order. The timestamp is captured when the
// error is constructed, so repeated renders agree; a Renderer with StampRender
// reports the render time instead. Decode parses a payload back into an Error.
package errors
