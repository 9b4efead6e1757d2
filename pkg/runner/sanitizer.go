package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is the check-in text limit in bytes.
const DefaultMaxInputSize = 4096

// EnvMaxInputSize overrides DefaultMaxInputSize.
const EnvMaxInputSize = "MOODSCAPE_MAX_INPUT_SIZE"

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer cleans free text before it reaches the controller.
type Sanitizer struct {
	// Limit is the maximum input size in bytes. Zero means DefaultMaxInputSize
	// (or EnvMaxInputSize when set).
	Limit int
}

// Clean rejects oversized or invalid UTF-8 input and strips control
// characters other than newline, tab and carriage return. Oversized input is
// rejected rather than truncated so a submission is never silently altered.
func (s Sanitizer) Clean(input string) (string, error) {
	limit := s.MaxSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isUnsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

// MaxSize is the effective input limit in bytes.
func (s Sanitizer) MaxSize() int {
	if s.Limit > 0 {
		return s.Limit
	}
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

// SanitizeInput cleans input with the default limit.
func SanitizeInput(input string) (string, error) {
	return Sanitizer{}.Clean(input)
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
