package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/preprocess"
)

func TestSymbolConverter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "percent",
			input:    "Sales grew 12% last year.",
			expected: "Sales grew 12 percent last year.",
		},
		{
			name:     "dollar amount",
			input:    "It costs $5 today.",
			expected: "It costs 5 dollars today.",
		},
		{
			name:     "dollar amount with cents",
			input:    "It costs $5.99 today.",
			expected: "It costs 5.99 dollars today.",
		},
		{
			name:     "euro and pound amounts",
			input:    "Prices: €10 and £20.",
			expected: "Prices: 10 euros and 20 pounds.",
		},
		{
			name:     "number sign",
			input:    "See item #4 in the list.",
			expected: "See item number 4 in the list.",
		},
		{
			name:     "ampersand",
			input:    "Research & development",
			expected: "Research and development",
		},
		{
			name:     "comparison operators",
			input:    "x >= y and y <= z",
			expected: "x greater than or equal to y and y less than or equal to z",
		},
		{
			name:     "equation",
			input:    "Here a = b holds.",
			expected: "Here a equals b holds.",
		},
		{
			name:     "addition",
			input:    "Compute 2 + 3 now.",
			expected: "Compute 2 plus 3 now.",
		},
		{
			name:     "arrow",
			input:    "input -> output",
			expected: "input arrow output",
		},
		{
			name:     "numbered list with period",
			input:    "1. First item",
			expected: "Point 1. First item",
		},
		{
			name:     "numbered list with parenthesis",
			input:    "2) Second item",
			expected: "2. Second item",
		},
		{
			name:     "bullet markers removed",
			input:    "• First point\n• Second point",
			expected: "First point\nSecond point",
		},
	}

	converter := preprocess.NewSymbolConverter()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := converter.Process(testCase.input, emptyContext())
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestSymbolConverterName(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		preprocess.SymbolConverterName,
		preprocess.NewSymbolConverter().Name(),
	)
}
