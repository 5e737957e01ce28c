package reader

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/book-expert/doc2speech/internal/core"
)

// RTFReader extracts plain text from Rich Text Format documents with a
// minimal control-word parser: non-text destination groups are dropped,
// known control words become their text equivalents, and everything else
// is passed through.
type RTFReader struct{}

// NewRTFReader creates an RTF document reader.
func NewRTFReader() *RTFReader {
	return &RTFReader{}
}

// SupportedExtensions returns the extensions this reader claims.
func (r *RTFReader) SupportedExtensions() []string {
	return []string{".rtf"}
}

// Read strips RTF markup from the file and returns the remaining text.
// Footnotes are recovered with the shared numbered-line scan; the page
// count is estimated from the text length.
func (r *RTFReader) Read(path string) (*core.DocumentContent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rtf file: %w", err)
	}

	text := cleanControlCharacters(stripRTF(raw))

	return &core.DocumentContent{
		Text:      text,
		Footnotes: scanNumberedFootnotes(text),
		PageCount: estimatePagesByChars(text),
	}, nil
}

// Destination groups whose content is metadata, not document text.
var rtfSkippedDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"generator":  true,
	"header":     true,
	"footer":     true,
}

// Control words with a direct text equivalent.
var rtfTextControls = map[string]string{
	"par":       "\n",
	"line":      "\n",
	"sect":      "\n\n",
	"page":      "\n\n",
	"tab":       "\t",
	"emdash":    "-",
	"endash":    "-",
	"lquote":    "'",
	"rquote":    "'",
	"ldblquote": `"`,
	"rdblquote": `"`,
	"bullet":    "-",
}

type rtfParser struct {
	data      []byte
	pos       int
	depth     int
	skipDepth int // depth at which a skipped destination began; -1 when not skipping
	out       strings.Builder
}

func stripRTF(data []byte) string {
	parser := &rtfParser{data: data, skipDepth: -1}

	for parser.pos < len(parser.data) {
		char := parser.data[parser.pos]

		switch char {
		case '{':
			parser.depth++
			parser.pos++
		case '}':
			if parser.skipDepth >= 0 && parser.depth <= parser.skipDepth {
				parser.skipDepth = -1
			}

			parser.depth--
			parser.pos++
		case '\\':
			parser.control()
		case '\r', '\n':
			parser.pos++
		default:
			if parser.skipDepth < 0 {
				parser.out.WriteRune(charmap.Windows1252.DecodeByte(char))
			}

			parser.pos++
		}
	}

	return parser.out.String()
}

// control consumes one control word or control symbol at pos (which points
// at the backslash).
func (p *rtfParser) control() {
	p.pos++
	if p.pos >= len(p.data) {
		return
	}

	char := p.data[p.pos]

	// Control symbols.
	switch char {
	case '\\', '{', '}':
		p.emit(string(char))
		p.pos++

		return
	case '~':
		p.emit(" ")
		p.pos++

		return
	case '_':
		p.emit("-")
		p.pos++

		return
	case '-':
		p.pos++

		return
	case '*':
		// \* marks an optional destination; drop the whole group.
		p.skip()
		p.pos++

		return
	case '\'':
		p.hexEscape()

		return
	}

	word, param, hasParam := p.controlWord()
	if word == "" {
		p.pos++

		return
	}

	switch {
	case rtfSkippedDestinations[word]:
		p.skip()
	case word == "u" && hasParam:
		p.unicodeEscape(param)
	default:
		if replacement, ok := rtfTextControls[word]; ok {
			p.emit(replacement)
		}
	}
}

// controlWord reads the letters and optional numeric parameter of a
// control word, consuming the single space delimiter when present.
func (p *rtfParser) controlWord() (word string, param int, hasParam bool) {
	start := p.pos
	for p.pos < len(p.data) && isASCIILetter(p.data[p.pos]) {
		p.pos++
	}

	word = string(p.data[start:p.pos])

	numStart := p.pos
	if p.pos < len(p.data) && p.data[p.pos] == '-' {
		p.pos++
	}

	for p.pos < len(p.data) && isASCIIDigit(p.data[p.pos]) {
		p.pos++
	}

	if p.pos > numStart {
		value, err := strconv.Atoi(string(p.data[numStart:p.pos]))
		if err == nil {
			param = value
			hasParam = true
		}
	}

	if p.pos < len(p.data) && p.data[p.pos] == ' ' {
		p.pos++
	}

	return word, param, hasParam
}

func (p *rtfParser) hexEscape() {
	p.pos++ // consume the quote
	if p.pos+1 >= len(p.data) {
		p.pos = len(p.data)

		return
	}

	value, err := strconv.ParseUint(string(p.data[p.pos:p.pos+2]), 16, 8)
	p.pos += 2

	if err == nil {
		p.emit(string(charmap.Windows1252.DecodeByte(byte(value))))
	}
}

func (p *rtfParser) unicodeEscape(param int) {
	// Negative values are codepoints above 0x7FFF encoded as signed 16-bit.
	if param < 0 {
		param += 0x10000
	}

	p.emit(string(rune(param)))

	// Consume the single-character ANSI fallback when present.
	if p.pos < len(p.data) && p.data[p.pos] == '?' {
		p.pos++
	}
}

func (p *rtfParser) skip() {
	if p.skipDepth < 0 {
		p.skipDepth = p.depth
	}
}

func (p *rtfParser) emit(s string) {
	if p.skipDepth < 0 {
		p.out.WriteString(s)
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

var (
	controlCharPattern = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
	multiSpacePattern  = regexp.MustCompile(` {2,}`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

func cleanControlCharacters(text string) string {
	text = controlCharPattern.ReplaceAllString(text, "")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
