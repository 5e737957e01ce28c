package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/reader"
)

func TestMarkdownReaderStripsFormatting(t *testing.T) {
	t.Parallel()

	markdownReader := reader.NewMarkdownReader()

	source := "# Title\n\nSome *emphasized* and **bold** text with `code`.\n"
	path := writeTempFile(t, "doc.md", source)

	doc, err := markdownReader.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nSome emphasized and bold text with code.", doc.Text)
	assert.Empty(t, doc.Footnotes)
}

func TestMarkdownReaderJoinsSoftBreaks(t *testing.T) {
	t.Parallel()

	markdownReader := reader.NewMarkdownReader()

	source := "First line\nsecond line of the same paragraph.\n"
	path := writeTempFile(t, "doc.md", source)

	doc, err := markdownReader.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "First line second line of the same paragraph.", doc.Text)
}

func TestMarkdownReaderLiftsFootnotes(t *testing.T) {
	t.Parallel()

	markdownReader := reader.NewMarkdownReader()

	source := "A claim.[^1]\n\nMore text.\n\n[^1]: The footnote body here.\n"
	path := writeTempFile(t, "doc.md", source)

	doc, err := markdownReader.Read(path)
	require.NoError(t, err)

	assert.Equal(t, "A claim.\n\nMore text.", doc.Text)
	require.Len(t, doc.Footnotes, 1)
	assert.Equal(t, "[1] The footnote body here.", doc.Footnotes[0])
}

func TestMarkdownReaderMultipleFootnotesKeepIndices(t *testing.T) {
	t.Parallel()

	markdownReader := reader.NewMarkdownReader()

	source := "One.[^1] Two.[^2]\n\n[^1]: First body.\n[^2]: Second body.\n"
	path := writeTempFile(t, "doc.md", source)

	doc, err := markdownReader.Read(path)
	require.NoError(t, err)

	assert.Equal(t, "One. Two.", doc.Text)
	require.Len(t, doc.Footnotes, 2)
	assert.Equal(t, "[1] First body.", doc.Footnotes[0])
	assert.Equal(t, "[2] Second body.", doc.Footnotes[1])
}

func TestMarkdownReaderSupportedExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		[]string{".md", ".markdown"},
		reader.NewMarkdownReader().SupportedExtensions(),
	)
}
