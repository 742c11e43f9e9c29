package shortcode

import (
	"crypto/rand"
	"fmt"
)

// alphabet matches the base36 output of the original short-code scheme.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the short code length used when none is configured.
const DefaultLength = 6

// Generator produces random alphanumeric short codes.
type Generator struct {
	length int
}

// NewGenerator creates a generator producing codes of the given length.
// Non-positive lengths fall back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Generate returns a new random short code. Codes are drawn from a
// lowercase-alphanumeric alphabet; uniqueness is probabilistic and must be
// checked by the caller against its store.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("shortcode: failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
