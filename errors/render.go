package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the wire timestamp layout: local time with a signed
// four digit UTC offset and no colon, e.g. 2024-03-01T14:05:09+0100.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// StampMode selects which instant the wire timestamp reports.
type StampMode string

const (
	// StampConstruction reports when the error was constructed. Rendering the
	// same error twice yields the same payload.
	StampConstruction StampMode = "construction"

	// StampRender reports when the payload was rendered.
	StampRender StampMode = "render"
)

// ParseStampMode parses a stamp mode name. The empty string selects
// StampConstruction.
func ParseStampMode(s string) (StampMode, error) {
	switch StampMode(s) {
	case "", StampConstruction:
		return StampConstruction, nil
	case StampRender:
		return StampRender, nil
	default:
		return "", fmt.Errorf("unknown timestamp mode %q", s)
	}
}

// payload is the wire representation of an Error.
type payload struct {
	Error     bool           `json:"error"`
	ErrorCode ErrorCode      `json:"errorCode"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
	Timestamp string         `json:"timestamp"`
}

// Renderer turns errors into wire payloads. The zero value stamps with the
// construction time in the local zone and keeps all details.
type Renderer struct {
	// Stamp selects the timestamp source.
	Stamp StampMode

	// Location is the zone timestamps are shown in. Nil means time.Local.
	Location *time.Location

	// RedactCauses drops original_error from details.
	RedactCauses bool

	// Now is the clock for StampRender. Nil means time.Now.
	Now func() time.Time
}

func (r Renderer) stamp(e *Error) string {
	t := e.timestamp
	if r.Stamp == StampRender {
		now := r.Now
		if now == nil {
			now = time.Now
		}
		t = now()
	}
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimestampLayout)
}

func (r Renderer) payload(e *Error) payload {
	details := e.Details()
	if r.RedactCauses {
		delete(details, DetailOriginalError)
	}
	return payload{
		Error:     true,
		ErrorCode: e.code,
		Message:   e.message,
		Details:   details,
		Timestamp: r.stamp(e),
	}
}

// Render returns the wire payload as a map with the keys error, errorCode,
// message, details and timestamp. Returns nil if e is nil.
func (r Renderer) Render(e *Error) map[string]any {
	if e == nil {
		return nil
	}
	p := r.payload(e)
	return map[string]any{
		"error":     p.Error,
		"errorCode": string(p.ErrorCode),
		"message":   p.Message,
		"details":   p.Details,
		"timestamp": p.Timestamp,
	}
}

// RenderJSON returns the wire payload as JSON text. It fails only when a
// caller-supplied details value cannot be encoded.
func (r Renderer) RenderJSON(e *Error) (string, error) {
	if e == nil {
		return "", fmt.Errorf("render nil error")
	}
	data, err := json.Marshal(r.payload(e))
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", e.code, err)
	}
	return string(data), nil
}

// ToMap renders e with the zero Renderer.
func (e *Error) ToMap() map[string]any {
	return Renderer{}.Render(e)
}

// ToJSON renders e as JSON text with the zero Renderer.
func (e *Error) ToJSON() (string, error) {
	return Renderer{}.RenderJSON(e)
}

// MarshalJSON implements json.Marshaler using the zero Renderer.
func (e *Error) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(Renderer{}.payload(e))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts only error payloads:
// error must be true and errorCode must be set. Numbers in details decode as
// float64.
func (e *Error) UnmarshalJSON(data []byte) error {
	var p struct {
		Error     *bool          `json:"error"`
		ErrorCode ErrorCode      `json:"errorCode"`
		Message   string         `json:"message"`
		Details   map[string]any `json:"details"`
		Timestamp string         `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Error == nil || !*p.Error {
		return fmt.Errorf("not an error payload")
	}
	if p.ErrorCode == "" {
		return fmt.Errorf("error payload missing errorCode")
	}

	var ts time.Time
	if p.Timestamp != "" {
		t, err := time.Parse(TimestampLayout, p.Timestamp)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", p.Timestamp, err)
		}
		ts = t
	}

	e.code = p.ErrorCode
	e.category = p.ErrorCode.DefaultCategory()
	e.message = p.Message
	e.details = copyDetails(p.Details)
	e.cause = nil
	if s, ok := e.details[DetailOriginalError].(string); ok {
		e.cause = fmt.Errorf("%s", s)
	}
	e.timestamp = ts
	return nil
}

// Decode parses a wire payload into an Error.
func Decode(data []byte) (*Error, error) {
	e := &Error{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// IsErrorPayload reports whether data is a JSON object whose error field is
// true. Engine responses that are not errors report false.
func IsErrorPayload(data []byte) bool {
	var probe struct {
		Error bool `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Error
}
