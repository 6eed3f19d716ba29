package schema

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 64KB.
	DefaultMaxInputSize = 64 << 10
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "AUTOMATA_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrControlChar   = errors.New("input contains control characters")
)

// CheckInput rejects input strings that cannot be split into symbols safely:
// oversized input, invalid UTF-8 and control characters (Validate refuses them
// as alphabet symbols). A non-positive limit selects MaxInputSize.
// Inputs are rejected, never cleaned.
func CheckInput(input string, limit int) error {
	if limit <= 0 {
		limit = MaxInputSize()
	}
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	for i, r := range input {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %U at byte %d", ErrControlChar, r, i)
		}
	}
	return nil
}

// MaxInputSize returns the input size limit, honoring EnvMaxInputSize.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
