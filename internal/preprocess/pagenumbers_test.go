package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/core"
	"github.com/book-expert/doc2speech/internal/preprocess"
)

func pageContext(pageCount int) core.ProcessingContext {
	return core.ProcessingContext{
		Footnotes:       nil,
		IgnoreFootnotes: false,
		PageCount:       pageCount,
	}
}

func TestPageNumberRemover(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     string
		pageCount int
		expected  string
	}{
		{
			name:      "bare digit line and page label removed",
			input:     "Page 3\nHello world.\n3",
			pageCount: 5,
			expected:  "Hello world.",
		},
		{
			name:      "large number survives small document",
			input:     "The year was\n1999\nand all was well.",
			pageCount: 10,
			expected:  "The year was\n1999\nand all was well.",
		},
		{
			name:      "page of total label removed",
			input:     "Page 2 of 12\nContent here.",
			pageCount: 12,
			expected:  "Content here.",
		},
		{
			name:      "centered marker removed",
			input:     "- 4 -\nContent here.",
			pageCount: 8,
			expected:  "Content here.",
		},
		{
			name:      "roman numeral line removed",
			input:     "iv\nPreface text.",
			pageCount: 8,
			expected:  "Preface text.",
		},
		{
			name:      "trailing page number after sentence stripped",
			input:     "The chapter ends here. 7",
			pageCount: 10,
			expected:  "The chapter ends here.",
		},
		{
			name:      "trailing number mid-sentence preserved",
			input:     "The answer is 42",
			pageCount: 100,
			expected:  "The answer is 42",
		},
		{
			name:      "unknown page count still strips small numbers",
			input:     "Some text.\n12",
			pageCount: 0,
			expected:  "Some text.",
		},
		{
			name:      "blank lines preserved",
			input:     "First paragraph.\n\nSecond paragraph.",
			pageCount: 2,
			expected:  "First paragraph.\n\nSecond paragraph.",
		},
	}

	remover := preprocess.NewPageNumberRemover()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := remover.Process(
				testCase.input,
				pageContext(testCase.pageCount),
			)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestPageNumberRemoverName(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		preprocess.PageNumberRemoverName,
		preprocess.NewPageNumberRemover().Name(),
	)
}
