package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanNumberedFootnotes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "bracketed marker",
			text:     "Body text.\n\n[1] A footnote of ample length.",
			expected: []string{"[1] A footnote of ample length."},
		},
		{
			name:     "bare number with dot",
			text:     "Body text.\n\n1. A footnote of ample length.",
			expected: []string{"[1] A footnote of ample length."},
		},
		{
			name:     "parenthesized marker",
			text:     "Body text.\n\n(2) Another footnote body here.",
			expected: []string{"[2] Another footnote body here."},
		},
		{
			name: "continuation line appended",
			text: "[1] A footnote that keeps\ngoing on the next line.",
			expected: []string{
				"[1] A footnote that keeps going on the next line.",
			},
		},
		{
			name:     "number too large rejected",
			text:     "100. Looks like a footnote but the number is too big.",
			expected: nil,
		},
		{
			name:     "short body rejected",
			text:     "[2] tiny",
			expected: nil,
		},
		{
			name: "blank line ends continuation",
			text: "[1] A footnote of ample length.\n\nRegular paragraph text.",
			expected: []string{
				"[1] A footnote of ample length.",
			},
		},
		{
			name: "multiple footnotes",
			text: "[1] First footnote body text.\n[2] Second footnote body text.",
			expected: []string{
				"[1] First footnote body text.",
				"[2] Second footnote body text.",
			},
		},
		{
			name:     "no footnotes",
			text:     "Just two ordinary paragraphs.\n\nNothing numbered here.",
			expected: nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, scanNumberedFootnotes(testCase.text))
		})
	}
}

func TestEstimatePagesByChars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, estimatePagesByChars(""))
	assert.Equal(t, 1, estimatePagesByChars("short"))
	assert.Equal(t, 2, estimatePagesByChars(strings.Repeat("a", 2*charsPerPageEstimate)))
}

func TestEstimatePagesByWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, estimatePagesByWords(""))
	assert.Equal(t, 1, estimatePagesByWords("a few words only"))
	assert.Equal(
		t,
		2,
		estimatePagesByWords(strings.Repeat("word ", 2*wordsPerPageEstimate)),
	)
}
