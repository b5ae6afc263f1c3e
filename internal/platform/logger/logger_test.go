package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("writes json at configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := SetupWithWriter(&buf, "warn")
		require.NoError(t, err)

		l.Info("hidden")
		l.Warn("visible", "url", "https://bucket.s3.amazonaws.com/key")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "visible", entry["msg"])
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "https://bucket.s3.amazonaws.com/key", entry["url"])
	})

	t.Run("installs default logger", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := SetupWithWriter(&buf, "debug")
		require.NoError(t, err)

		slog.Debug("through default")
		assert.Contains(t, buf.String(), "through default")
	})

	t.Run("invalid level falls back to info with a warning", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := SetupWithWriter(&buf, "chatty")
		require.NoError(t, err)

		l.Debug("dropped")
		out := buf.String()
		assert.Contains(t, out, "invalid log level configured")
		assert.NotContains(t, out, "dropped")
	})

	t.Run("nil writer", func(t *testing.T) {
		l, err := SetupWithWriter(nil, "info")
		assert.Error(t, err)
		assert.Nil(t, l)
	})
}
