package logging

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayprograms/intelkit/errors"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(LevelInfo)

	// Debug should be filtered
	logger.Debug("debug message")
	assert.Zero(t, buf.Len(), "debug message should be filtered at INFO level")

	logger.Info("info message")
	output := buf.String()
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "info message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelInfo, false},
		{"debug", LevelDebug, false},
		{" Warn ", LevelWarn, false},
		{"ERROR", LevelError, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithComponent("engine")
	logger.SetOutput(&buf)

	logger.Info("test message")
	assert.Contains(t, buf.String(), "[engine]")
}

func TestLogger_WithTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithTraceID("req-123")
	logger.SetOutput(&buf)

	logger.Info("test message")
	assert.Contains(t, buf.String(), "trace_id=req-123")
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithComponent("test")
	logger.SetOutput(&buf)

	logger.Info("hello world", map[string]interface{}{"b": 2, "a": 1})

	output := buf.String()
	// Format: LEVEL TIMESTAMP [component] message key=value
	// Example: INFO  2026-02-05T04:00:00.000Z [test] hello world a=1 b=2
	assert.True(t, strings.HasPrefix(output, "INFO "), output)
	assert.Contains(t, output, "[test] hello world a=1 b=2\n")
}

func TestLogger_FailureTaxonomyError(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)

	logger.Failure("request rejected", errors.RateLimit(60, 100))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "ERROR "), output)
	assert.Contains(t, output, "request rejected")
	assert.Contains(t, output, "code=RATE_LIMIT_EXCEEDED")
	assert.Contains(t, output, "details.max_requests=100")
	assert.Contains(t, output, "details.retry_after=60")
	assert.Contains(t, output, "details.window_seconds=60")
	assert.Contains(t, output, "retryable=true")
}

func TestLogger_FailureWrapped(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)

	err := fmt.Errorf("startup: %w", errors.Initialization("engine not loaded", "python"))
	logger.Failure("startup failed", err)

	output := buf.String()
	assert.Contains(t, output, "code=INITIALIZATION_ERROR")
	assert.Contains(t, output, "details.component=python")
	assert.NotContains(t, output, "retryable")
}

func TestLogger_FailureForeignError(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)

	logger.Failure("io", stderrors.New("disk full"))
	assert.Contains(t, buf.String(), "error=disk full")

	buf.Reset()
	logger.Failure("nothing", nil)
	assert.Zero(t, buf.Len())
}

func TestLogger_SharedOutputAcrossDerived(t *testing.T) {
	var buf bytes.Buffer
	base := New()
	base.SetOutput(&buf)

	a := base.WithComponent("a")
	b := base.WithComponent("b")
	a.Info("one")
	b.Info("two")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}
