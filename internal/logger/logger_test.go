package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_JSONFormatInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
	})

	log.Info("hello", "station", "groove-fm")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"station":"groove-fm"`)
}

func TestNew_PrettyFormatInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "development",
	})

	log.Info("tick", "total_time", 42)

	out := buf.String()
	assert.Contains(t, out, "tick")
	assert.Contains(t, out, "total_time=42")
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "pretty",
		Level:  slog.LevelWarn,
	})

	log.Debug("dropped")
	log.Info("also dropped")
	log.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json"})

	log.WithError(assert.AnError).Error("save failed")

	assert.True(t, strings.Contains(buf.String(), assert.AnError.Error()))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	require.NotNil(t, log)
	log.Info("goes nowhere")
}
