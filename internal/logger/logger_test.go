package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)

	log.Info("hidden")
	log.Warn("shown", "chat_id", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "chat_id=1")
}

func TestNewOffDiscards(t *testing.T) {
	var buf bytes.Buffer
	for _, level := range []string{"", "off"} {
		New(level, &buf).Error("nothing")
	}
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseLevel("verbose")
	assert.False(t, ok)
	assert.True(t, Valid("off"))
	assert.False(t, Valid("verbose"))
}
