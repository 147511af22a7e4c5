package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithLevel_WritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "materialgirl.log")
	log := NewWithLevel("warn", file)

	log.Info("skipped")
	log.Warn("written", "key", "rates")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipped")
	assert.Contains(t, string(data), "msg=written key=rates")
}

func TestNewWithLevel_BadFileFallsBackToStderr(t *testing.T) {
	log := NewWithLevel("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}
