package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"DEBUG":  slog.LevelDebug,
		"info":   slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"":       slog.LevelInfo,
		"chatty": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: "warn", Format: "json"})

	l.Info("dropped")
	l.Warn("kept", "source", "guardian")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "guardian", line["source"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{})

	l.Debug("dropped")
	l.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "dropped")
}
