package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/reader"
)

func TestDOCReaderMissingFile(t *testing.T) {
	t.Parallel()

	docReader := reader.NewDOCReader()

	// Fails whether or not antiword is installed.
	_, err := docReader.Read("/nonexistent/file.doc")
	require.Error(t, err)
}

func TestDOCReaderSupportedExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".doc"}, reader.NewDOCReader().SupportedExtensions())
}
