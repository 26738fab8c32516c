// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayestree/inference"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"debug+2", slog.LevelDebug + 2},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("chatty")
	require.Error(t, err)
	_, err = ParseLevel("")
	require.Error(t, err)
}

func TestNewLogger_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogConfig{Level: "warn", Format: LogFormatText})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "cliques", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "cliques=3")
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogConfig{Level: "debug", Format: LogFormatJSON})
	require.NoError(t, err)

	logger.Debug("cache miss", "key", "x1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "cache miss", rec["msg"])
	assert.Equal(t, "x1", rec["key"])
}

func TestNewLogger_Errors(t *testing.T) {
	t.Parallel()
	_, err := NewLogger(&bytes.Buffer{}, LogConfig{Level: "nope", Format: LogFormatText})
	require.Error(t, err)
	_, err = NewLogger(&bytes.Buffer{}, LogConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
}

func TestKeyFormatter(t *testing.T) {
	t.Parallel()
	k := inference.Symbol('x', 4)

	kf, err := KeyFormatter(KeyFormatSymbol)
	require.NoError(t, err)
	assert.Equal(t, "x4", kf(k))

	kf, err = KeyFormatter(" Index ")
	require.NoError(t, err)
	assert.Equal(t, inference.DefaultKeyFormatter(k), kf(k))

	_, err = KeyFormatter("hex")
	require.Error(t, err)
}
