package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/reader"
)

func TestPDFReaderRejectsNonPDF(t *testing.T) {
	t.Parallel()

	pdfReader := reader.NewPDFReader()

	path := writeTempFile(t, "fake.pdf", "this is not a pdf document")

	_, err := pdfReader.Read(path)
	require.Error(t, err)
}

func TestPDFReaderMissingFile(t *testing.T) {
	t.Parallel()

	pdfReader := reader.NewPDFReader()

	_, err := pdfReader.Read("/nonexistent/file.pdf")
	require.Error(t, err)
}

func TestPDFReaderSupportedExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".pdf"}, reader.NewPDFReader().SupportedExtensions())
}
