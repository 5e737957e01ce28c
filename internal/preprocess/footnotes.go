package preprocess

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/book-expert/doc2speech/internal/core"
)

// FootnoteHandlerName identifies the footnote handling step.
const FootnoteHandlerName = "footnote_handler"

// Regex patterns for footnote markers and definitions.
const (
	bracketMarkerRegexPattern  = `\[(\d+)\]`
	caretMarkerRegexPattern    = `\^(\d+)`
	asteriskMarkerRegexPattern = `([a-zA-Z.,!?])\*{1,3}(\s|$|[.,!?])`
	definitionRegexPattern     = `^\[(\d+)\]\s*(.+)$`
	doubleSpaceRegexPattern    = `  +`
	spacePunctRegexPattern     = ` +([.,!?;:])`
)

// Unicode superscript digits used as footnote markers.
var superscriptDigits = map[rune]string{
	'⁰': "0", '¹': "1", '²': "2", '³': "3", '⁴': "4",
	'⁵': "5", '⁶': "6", '⁷': "7", '⁸': "8", '⁹': "9",
}

// FootnoteHandler either strips footnote markers from the text
// (IgnoreFootnotes=true) or splices each footnote body inline at its
// marker so the footnote is read aloud in place (IgnoreFootnotes=false).
//
// Markers handled: bracketed [1], caret ^1, unicode superscripts, and
// trailing asterisks. Bodies come from the context's footnote list, which
// uses the "[N] body" convention; entries without the prefix are matched
// positionally. Marker removal is idempotent: a second run over stripped
// text is a no-op.
type FootnoteHandler struct {
	bracketMarkerPattern  *regexp.Regexp
	caretMarkerPattern    *regexp.Regexp
	asteriskMarkerPattern *regexp.Regexp
	definitionPattern     *regexp.Regexp
	doubleSpacePattern    *regexp.Regexp
	spacePunctPattern     *regexp.Regexp
}

// NewFootnoteHandler creates the step with compiled patterns.
func NewFootnoteHandler() *FootnoteHandler {
	return &FootnoteHandler{
		bracketMarkerPattern:  regexp.MustCompile(bracketMarkerRegexPattern),
		caretMarkerPattern:    regexp.MustCompile(caretMarkerRegexPattern),
		asteriskMarkerPattern: regexp.MustCompile(asteriskMarkerRegexPattern),
		definitionPattern:     regexp.MustCompile(definitionRegexPattern),
		doubleSpacePattern:    regexp.MustCompile(doubleSpaceRegexPattern),
		spacePunctPattern:     regexp.MustCompile(spacePunctRegexPattern),
	}
}

// Name identifies this step in pipeline errors.
func (h *FootnoteHandler) Name() string {
	return FootnoteHandlerName
}

// Process applies the configured footnote policy to the text.
func (h *FootnoteHandler) Process(text string, ctx core.ProcessingContext) (string, error) {
	if ctx.IgnoreFootnotes {
		return h.removeMarkers(text), nil
	}

	return h.spliceInline(text, ctx.Footnotes), nil
}

func (h *FootnoteHandler) removeMarkers(text string) string {
	result := h.bracketMarkerPattern.ReplaceAllString(text, "")
	result = h.caretMarkerPattern.ReplaceAllString(result, "")
	result = h.asteriskMarkerPattern.ReplaceAllString(result, "$1$2")

	var builder strings.Builder

	for _, char := range result {
		if _, isSuperscript := superscriptDigits[char]; isSuperscript {
			continue
		}

		builder.WriteRune(char)
	}

	return h.cleanSpacing(builder.String())
}

func (h *FootnoteHandler) spliceInline(text string, footnotes []string) string {
	if len(footnotes) == 0 {
		return text
	}

	bodies := h.parseDefinitions(footnotes)

	result := h.bracketMarkerPattern.ReplaceAllStringFunc(text, func(marker string) string {
		number := strings.Trim(marker, "[]")
		if body, ok := bodies[number]; ok {
			return " (" + body + ")"
		}

		return marker
	})

	result = h.caretMarkerPattern.ReplaceAllStringFunc(result, func(marker string) string {
		number := strings.TrimPrefix(marker, "^")
		if body, ok := bodies[number]; ok {
			return " (" + body + ")"
		}

		return marker
	})

	var builder strings.Builder

	for _, char := range result {
		digit, isSuperscript := superscriptDigits[char]
		if isSuperscript {
			if body, ok := bodies[digit]; ok {
				builder.WriteString(" (" + body + ")")

				continue
			}
		}

		builder.WriteRune(char)
	}

	return h.cleanSpacing(builder.String())
}

// parseDefinitions maps footnote numbers to bodies. Entries in "[N] body"
// form are matched by number; plain entries are matched by position.
func (h *FootnoteHandler) parseDefinitions(footnotes []string) map[string]string {
	bodies := make(map[string]string, len(footnotes))

	for position, footnote := range footnotes {
		match := h.definitionPattern.FindStringSubmatch(footnote)
		if match != nil {
			bodies[match[1]] = strings.TrimSpace(match[2])

			continue
		}

		key := strconv.Itoa(position + 1)
		if _, taken := bodies[key]; !taken {
			bodies[key] = strings.TrimSpace(footnote)
		}
	}

	return bodies
}

func (h *FootnoteHandler) cleanSpacing(text string) string {
	text = h.doubleSpacePattern.ReplaceAllString(text, " ")

	return h.spacePunctPattern.ReplaceAllString(text, "$1")
}
