package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/book-expert/doc2speech/internal/language"
)

const (
	englishSample = "The quick brown fox jumps over the lazy dog. " +
		"It was the best of times, it was the worst of times, it was the " +
		"age of wisdom, it was the age of foolishness."
	germanSample = "Der schnelle braune Fuchs springt über den faulen Hund. " +
		"Es war einmal ein kleines Mädchen, das lebte in einem großen Wald " +
		"und besuchte jeden Sonntag seine Großmutter."
)

func TestDetectEnglish(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en", language.Detect(englishSample))
}

func TestDetectGerman(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "de", language.Detect(germanSample))
}

func TestDetectEmptyTextIsUnreliable(t *testing.T) {
	t.Parallel()

	assert.Empty(t, language.Detect(""))
}

func TestDetectWithFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en", language.DetectWithFallback("", "en"))
	assert.Equal(t, "de", language.DetectWithFallback(germanSample, "en"))
}
