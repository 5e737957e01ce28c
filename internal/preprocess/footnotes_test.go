package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/core"
	"github.com/book-expert/doc2speech/internal/preprocess"
)

func footnoteContext(footnotes []string, ignore bool) core.ProcessingContext {
	return core.ProcessingContext{
		Footnotes:       footnotes,
		IgnoreFootnotes: ignore,
		PageCount:       0,
	}
}

func TestFootnoteHandlerSplicesInline(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()

	ctx := footnoteContext([]string{"See appendix A"}, false)

	result, err := handler.Process("A claim[1].", ctx)
	require.NoError(t, err)
	assert.Equal(t, "A claim (See appendix A).", result)
}

func TestFootnoteHandlerSplicesNumberedDefinitions(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()

	footnotes := []string{
		"[2] Second note body",
		"[1] First note body",
	}

	result, err := handler.Process(
		"First claim[1] and second claim[2].",
		footnoteContext(footnotes, false),
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		"First claim (First note body) and second claim (Second note body).",
		result,
	)
}

func TestFootnoteHandlerSplicesCaretAndSuperscript(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()

	ctx := footnoteContext([]string{"[1] the body"}, false)

	caret, err := handler.Process("A claim^1.", ctx)
	require.NoError(t, err)
	assert.Equal(t, "A claim (the body).", caret)

	superscript, err := handler.Process("A claim¹.", ctx)
	require.NoError(t, err)
	assert.Equal(t, "A claim (the body).", superscript)
}

func TestFootnoteHandlerUnknownMarkerPreserved(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()

	ctx := footnoteContext([]string{"[1] only one"}, false)

	result, err := handler.Process("A claim[7].", ctx)
	require.NoError(t, err)
	assert.Equal(t, "A claim[7].", result)
}

func TestFootnoteHandlerNoFootnotesPassesThrough(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()

	result, err := handler.Process("A claim[1].", footnoteContext(nil, false))
	require.NoError(t, err)
	assert.Equal(t, "A claim[1].", result)
}

func TestFootnoteHandlerRemovesMarkers(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()

	ctx := footnoteContext([]string{"[1] unused"}, true)

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bracket marker",
			input:    "A claim[1]. More text.",
			expected: "A claim. More text.",
		},
		{
			name:     "caret marker",
			input:    "A claim^1. More text.",
			expected: "A claim. More text.",
		},
		{
			name:     "superscript marker",
			input:    "A claim¹. More text.",
			expected: "A claim. More text.",
		},
		{
			name:     "trailing asterisk",
			input:    "A claim*. More text.",
			expected: "A claim. More text.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := handler.Process(testCase.input, ctx)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestFootnoteHandlerRemovalIsIdempotent(t *testing.T) {
	t.Parallel()

	handler := preprocess.NewFootnoteHandler()
	ctx := footnoteContext(nil, true)

	once, err := handler.Process("A claim[1] with notes^2 here¹.", ctx)
	require.NoError(t, err)

	twice, err := handler.Process(once, ctx)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFootnoteHandlerName(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		preprocess.FootnoteHandlerName,
		preprocess.NewFootnoteHandler().Name(),
	)
}
