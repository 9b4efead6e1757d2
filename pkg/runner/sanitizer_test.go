package runner

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_Limit(t *testing.T) {
	s := Sanitizer{Limit: 8}

	_, err := s.Clean(strings.Repeat("a", 8))
	assert.NoError(t, err)

	_, err = s.Clean(strings.Repeat("a", 9))
	assert.True(t, errors.Is(err, ErrInputTooLarge))
}

func TestSanitizer_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("12345678901")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = SanitizeInput("12345")
	assert.NoError(t, err)
}

func TestSanitizer_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "I feel fine", "I feel fine"},
		{"Safe Controls", "line1\nline2\ttab", "line1\nline2\ttab"},
		{"ANSI Escape", "\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"Null And Bell", "a\x00b\x07", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizer_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
