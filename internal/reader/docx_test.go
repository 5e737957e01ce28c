package reader_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/reader"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello docx world.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t xml:space="preserve"> paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

const testFootnotesXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:footnote w:id="-1"><w:p><w:r><w:t>separator</w:t></w:r></w:p></w:footnote>
  <w:footnote w:id="0"><w:p><w:r><w:t>continuation</w:t></w:r></w:p></w:footnote>
  <w:footnote w:id="1"><w:p><w:r><w:t>A docx footnote body.</w:t></w:r></w:p></w:footnote>
</w:footnotes>`

func writeDOCX(t *testing.T, members map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.docx")

	file, err := os.Create(path)
	require.NoError(t, err)

	writer := zip.NewWriter(file)

	for name, content := range members {
		member, createErr := writer.Create(name)
		require.NoError(t, createErr)

		_, writeErr := member.Write([]byte(content))
		require.NoError(t, writeErr)
	}

	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	return path
}

func TestDOCXReaderExtractsParagraphs(t *testing.T) {
	t.Parallel()

	docxReader := reader.NewDOCXReader()

	path := writeDOCX(t, map[string]string{
		"word/document.xml": testDocumentXML,
	})

	doc, err := docxReader.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello docx world.\n\nSecond paragraph.", doc.Text)
	assert.Empty(t, doc.Footnotes)
	assert.Equal(t, 1, doc.PageCount)
}

func TestDOCXReaderExtractsFootnotes(t *testing.T) {
	t.Parallel()

	docxReader := reader.NewDOCXReader()

	path := writeDOCX(t, map[string]string{
		"word/document.xml":  testDocumentXML,
		"word/footnotes.xml": testFootnotesXML,
	})

	doc, err := docxReader.Read(path)
	require.NoError(t, err)

	require.Len(t, doc.Footnotes, 1, "separator pseudo-footnotes must be dropped")
	assert.Equal(t, "[1] A docx footnote body.", doc.Footnotes[0])
}

func TestDOCXReaderMissingDocumentPart(t *testing.T) {
	t.Parallel()

	docxReader := reader.NewDOCXReader()

	path := writeDOCX(t, map[string]string{
		"word/other.xml": "<other/>",
	})

	_, err := docxReader.Read(path)
	require.ErrorIs(t, err, reader.ErrMissingDocumentXML)
}

func TestDOCXReaderNotAnArchive(t *testing.T) {
	t.Parallel()

	docxReader := reader.NewDOCXReader()

	path := writeTempFile(t, "fake.docx", "not a zip archive")

	_, err := docxReader.Read(path)
	require.Error(t, err)
}

func TestDOCXReaderSupportedExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".docx"}, reader.NewDOCXReader().SupportedExtensions())
}
