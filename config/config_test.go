package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayprograms/intelkit/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	r, err := cfg.Renderer()
	require.NoError(t, err)
	assert.Equal(t, errors.StampConstruction, r.Stamp)
	assert.Equal(t, time.Local, r.Location)
	assert.False(t, r.RedactCauses)
}

func TestParse(t *testing.T) {
	content := `
[errors]
timestamp = "render"
timezone = "UTC"
redact_causes = true

[logging]
level = "debug"
component = "engine"
`
	cfg, err := Parse(content)
	require.NoError(t, err)

	r, err := cfg.Renderer()
	require.NoError(t, err)
	assert.Equal(t, errors.StampRender, r.Stamp)
	assert.Equal(t, time.UTC, r.Location)
	assert.True(t, r.RedactCauses)
	assert.Equal(t, "engine", cfg.Logging.Component)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse(`
[errors]
redact_causes = true
`)
	require.NoError(t, err)
	assert.Equal(t, "construction", cfg.Errors.Timestamp)
	assert.Equal(t, "Local", cfg.Errors.Timezone)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "intelkit", cfg.Logging.Component)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `[errors`},
		{"unknown key", "[errors]\nverbose = true\n"},
		{"bad timestamp mode", "[errors]\ntimestamp = \"later\"\n"},
		{"bad timezone", "[errors]\ntimezone = \"Mars/Olympus_Mons\"\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeInitialization), "got %v", err)

			e, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, "config", e.Details()[errors.DetailComponent])
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[errors]\ntimezone = \"UTC\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Errors.Timezone)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInitialization))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestLoadFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[logging]\nlevel = \"warn\"\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FileName, path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestRendererAppliesToErrors(t *testing.T) {
	cfg, err := Parse("[errors]\ntimezone = \"UTC\"\nredact_causes = true\n")
	require.NoError(t, err)
	r, err := cfg.Renderer()
	require.NoError(t, err)

	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.FixedZone("CET", 3600))
	e := errors.Processing("failed", os.ErrPermission, errors.WithTimestamp(ts))
	got := r.Render(e)
	assert.Equal(t, "2024-03-01T13:05:09+0000", got["timestamp"])
	assert.Equal(t, map[string]any{}, got["details"])
}

func TestLogger(t *testing.T) {
	cfg, err := Parse("[logging]\nlevel = \"warn\"\ncomponent = \"bridge\"\n")
	require.NoError(t, err)

	logger, err := cfg.Logger()
	require.NoError(t, err)

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Failure("startup failed", errors.Initialization("runtime missing", "python"))
	assert.Contains(t, buf.String(), "[bridge]")
	assert.Contains(t, buf.String(), "code=INITIALIZATION_ERROR")
}

func TestLoggerInvalidLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "chatty"
	_, err := cfg.Logger()
	assert.True(t, errors.Is(err, errors.CodeInitialization))

	_, err = cfg.Renderer()
	assert.Error(t, err)
}
