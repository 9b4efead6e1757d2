package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(&buf, slog.LevelInfo, "json")

	logger.Info("hello", "error", "boom")

	assert.Contains(t, buf.String(), `"err":"boom"`)
}

func TestNewWithFormat_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(&buf, slog.LevelWarn, "text")

	logger.Info("quiet")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
