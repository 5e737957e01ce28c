package reader

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/book-expert/doc2speech/internal/core"
)

// DOCX archive members.
const (
	docxDocumentMember  = "word/document.xml"
	docxFootnotesMember = "word/footnotes.xml"
)

// ErrMissingDocumentXML indicates a DOCX archive without the main
// document part.
var ErrMissingDocumentXML = errors.New("docx archive has no " + docxDocumentMember)

// DOCXReader extracts text and footnotes from Microsoft Word DOCX files.
// DOCX is a ZIP archive of XML parts; the reader streams the main document
// part for paragraph text and the footnotes part for footnote bodies, so
// no format library beyond archive/zip and encoding/xml is needed.
type DOCXReader struct{}

// NewDOCXReader creates a DOCX document reader.
func NewDOCXReader() *DOCXReader {
	return &DOCXReader{}
}

// SupportedExtensions returns the extensions this reader claims.
func (r *DOCXReader) SupportedExtensions() []string {
	return []string{".docx"}
}

// Read extracts paragraph text and footnotes from a DOCX file. The page
// count is estimated from the word count since DOCX carries no fixed
// pagination.
func (r *DOCXReader) Read(path string) (*core.DocumentContent, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}

	defer func() {
		_ = archive.Close()
	}()

	text, err := r.extractDocumentText(&archive.Reader)
	if err != nil {
		return nil, err
	}

	footnotes, err := r.extractFootnotes(&archive.Reader)
	if err != nil {
		return nil, err
	}

	return &core.DocumentContent{
		Text:      text,
		Footnotes: footnotes,
		PageCount: estimatePagesByWords(text),
	}, nil
}

func (r *DOCXReader) extractDocumentText(archive *zip.Reader) (string, error) {
	part, err := openArchiveMember(archive, docxDocumentMember)
	if err != nil {
		return "", err
	}

	if part == nil {
		return "", ErrMissingDocumentXML
	}

	defer func() {
		_ = part.Close()
	}()

	text, err := decodeDocumentXML(part)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", docxDocumentMember, err)
	}

	return text, nil
}

func (r *DOCXReader) extractFootnotes(archive *zip.Reader) ([]string, error) {
	part, err := openArchiveMember(archive, docxFootnotesMember)
	if err != nil {
		return nil, err
	}

	// The footnotes part is optional.
	if part == nil {
		return nil, nil
	}

	defer func() {
		_ = part.Close()
	}()

	footnotes, err := decodeFootnotesXML(part)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", docxFootnotesMember, err)
	}

	return footnotes, nil
}

func openArchiveMember(archive *zip.Reader, name string) (io.ReadCloser, error) {
	for _, file := range archive.File {
		if file.Name != name {
			continue
		}

		part, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}

		return part, nil
	}

	return nil, nil
}

// decodeDocumentXML streams WordprocessingML, collecting run text (w:t),
// turning tabs and breaks into whitespace and paragraph ends (w:p) into
// blank lines.
func decodeDocumentXML(source io.Reader) (string, error) {
	decoder := xml.NewDecoder(source)

	var (
		builder   strings.Builder
		inRunText bool
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "t":
				inRunText = true
			case "tab":
				builder.WriteString("\t")
			case "br":
				builder.WriteString("\n")
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "t":
				inRunText = false
			case "p":
				builder.WriteString("\n\n")
			}
		case xml.CharData:
			if inRunText {
				builder.Write(element)
			}
		}
	}

	return collapseBlankLines(builder.String()), nil
}

// decodeFootnotesXML collects the body of every real footnote (positive
// id; ids 0 and -1 are the separator pseudo-footnotes) as "[N] body".
func decodeFootnotesXML(source io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(source)

	var (
		footnotes []string
		builder   strings.Builder
		currentID = 0
		inRunText bool
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}

		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "footnote":
				currentID = footnoteID(element)

				builder.Reset()
			case "t":
				inRunText = currentID > 0
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "t":
				inRunText = false
			case "footnote":
				body := strings.TrimSpace(builder.String())
				if currentID > 0 && body != "" {
					footnotes = append(
						footnotes,
						fmt.Sprintf("[%d] %s", currentID, body),
					)
				}

				currentID = 0
			}
		case xml.CharData:
			if inRunText {
				builder.Write(element)
			}
		}
	}

	return footnotes, nil
}

func footnoteID(element xml.StartElement) int {
	for _, attr := range element.Attr {
		if attr.Name.Local != "id" {
			continue
		}

		id, err := strconv.Atoi(attr.Value)
		if err != nil {
			return 0
		}

		return id
	}

	return 0
}

// collapseBlankLines trims each line and folds runs of blank lines into a
// single paragraph break.
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")

	var (
		result    []string
		blankRun  int
		wroteText bool
	)

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankRun++

			continue
		}

		if blankRun > 0 && wroteText {
			result = append(result, "")
		}

		result = append(result, line)
		blankRun = 0
		wroteText = true
	}

	return strings.Join(result, "\n")
}
