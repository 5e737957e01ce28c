package reader

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/book-expert/doc2speech/internal/core"
)

// TextReader reads plain text files. Input encoding is detected by BOM
// and UTF-8 validity, falling back to Windows-1252, which decodes any
// byte sequence.
type TextReader struct{}

// NewTextReader creates a plain text reader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// SupportedExtensions returns the extensions this reader claims.
func (r *TextReader) SupportedExtensions() []string {
	return []string{".txt"}
}

// Read loads and decodes the file. Plain text has no structured
// footnotes; the page count is estimated from the text length.
func (r *TextReader) Read(path string) (*core.DocumentContent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	return &core.DocumentContent{
		Text:      text,
		Footnotes: nil,
		PageCount: estimatePagesByChars(text),
	}, nil
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func decodeText(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()

		decoded, err := decoder.Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode utf-16: %w", err)
		}

		return string(decoded), nil
	}

	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode windows-1252: %w", err)
	}

	return string(decoded), nil
}
