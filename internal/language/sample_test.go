package language

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSampleTextTrimsAtRuneBoundary(t *testing.T) {
	t.Parallel()

	// Three-byte runes put the byte cap in the middle of a rune.
	text := strings.Repeat("語", 2000)

	sample := sampleText(text)

	assert.True(t, utf8.ValidString(sample))
	assert.LessOrEqual(t, len(sample), maxSampleBytes)
	assert.Equal(t, maxSampleBytes-1, len(sample))
}

func TestSampleTextShortTextUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short text", sampleText("short text"))
}

func TestSampleTextExactCapUnchanged(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", maxSampleBytes)

	assert.Equal(t, text, sampleText(text))
}
