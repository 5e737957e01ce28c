package reader

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/book-expert/doc2speech/internal/core"
)

// PDFReader extracts text from PDF documents. Page text is joined with
// blank lines so paragraph structure survives into preprocessing, and
// bottom-of-page numbered lines are scanned as footnote candidates.
type PDFReader struct{}

// NewPDFReader creates a PDF document reader.
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// SupportedExtensions returns the extensions this reader claims.
func (r *PDFReader) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Read extracts the full text, footnotes, and page count of a PDF file.
func (r *PDFReader) Read(path string) (*core.DocumentContent, error) {
	file, document, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	pageCount := document.NumPage()

	var (
		pages     []string
		footnotes []string
	)

	for pageNumber := 1; pageNumber <= pageCount; pageNumber++ {
		page := document.Page(pageNumber)
		if page.V.IsNull() {
			continue
		}

		pageText, textErr := page.GetPlainText(nil)
		if textErr != nil {
			return nil, fmt.Errorf(
				"failed to extract text from page %d: %w",
				pageNumber,
				textErr,
			)
		}

		pages = append(pages, pageText)
		footnotes = append(footnotes, scanNumberedFootnotes(pageText)...)
	}

	return &core.DocumentContent{
		Text:      strings.Join(pages, "\n\n"),
		Footnotes: footnotes,
		PageCount: pageCount,
	}, nil
}
