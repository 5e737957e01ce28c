package preprocess

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/book-expert/doc2speech/internal/core"
)

// PageNumberRemoverName identifies the page-number removal step.
const PageNumberRemoverName = "page_number_remover"

// defaultMaxPage bounds the plausibility check when the document's page
// count is unknown.
const defaultMaxPage = 10000

// pageNumberSlack allows page numbering schemes that exceed the physical
// page count (front matter, per-section restarts).
const pageNumberSlack = 2

// Regex patterns for page-number detection.
const (
	digitLineRegexPattern      = `^\d+$`
	pageLabelRegexPattern      = `^[Pp]age\s+\d+(\s+(of|/)\s+\d+)?$`
	centeredNumberRegexPattern = `^[-–—]\s*\d+\s*[-–—]$`
	romanNumeralRegexPattern   = `^[ivxlcdmIVXLCDM]+$`
	trailingNumberRegexPattern = `\s+(\d{1,4})\s*$`
)

// PageNumberRemover strips standalone lines that are likely page numbers:
// bare digit lines, "Page X [of Y]" labels, centered "- X -" markers, and
// roman-numeral-only lines. The document page count bounds which numbers
// are plausible so legitimate standalone numbers (years, quantities)
// survive.
type PageNumberRemover struct {
	digitLinePattern      *regexp.Regexp
	pageLabelPattern      *regexp.Regexp
	centeredNumberPattern *regexp.Regexp
	romanNumeralPattern   *regexp.Regexp
	trailingNumberPattern *regexp.Regexp
}

// NewPageNumberRemover creates the step with compiled patterns.
func NewPageNumberRemover() *PageNumberRemover {
	return &PageNumberRemover{
		digitLinePattern:      regexp.MustCompile(digitLineRegexPattern),
		pageLabelPattern:      regexp.MustCompile(pageLabelRegexPattern),
		centeredNumberPattern: regexp.MustCompile(centeredNumberRegexPattern),
		romanNumeralPattern:   regexp.MustCompile(romanNumeralRegexPattern),
		trailingNumberPattern: regexp.MustCompile(trailingNumberRegexPattern),
	}
}

// Name identifies this step in pipeline errors.
func (r *PageNumberRemover) Name() string {
	return PageNumberRemoverName
}

// Process removes page-number lines and trailing page numbers from the
// text.
func (r *PageNumberRemover) Process(text string, ctx core.ProcessingContext) (string, error) {
	maxPage := ctx.PageCount
	if maxPage <= 0 {
		maxPage = defaultMaxPage
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if r.isPageNumberLine(strings.TrimSpace(line), maxPage) {
			continue
		}

		kept = append(kept, r.stripTrailingPageNumber(line, maxPage))
	}

	return strings.Join(kept, "\n"), nil
}

func (r *PageNumberRemover) isPageNumberLine(line string, maxPage int) bool {
	if line == "" {
		return false
	}

	if r.digitLinePattern.MatchString(line) {
		number, err := strconv.Atoi(line)
		if err != nil {
			return false
		}

		return number >= 1 && number <= maxPage*pageNumberSlack
	}

	return r.pageLabelPattern.MatchString(line) ||
		r.centeredNumberPattern.MatchString(line) ||
		r.romanNumeralPattern.MatchString(line)
}

// stripTrailingPageNumber removes a trailing number from a line when the
// preceding text already ends a sentence, the common shape of a page
// number glued to the last paragraph line of a page.
func (r *PageNumberRemover) stripTrailingPageNumber(line string, maxPage int) string {
	match := r.trailingNumberPattern.FindStringSubmatchIndex(line)
	if match == nil {
		return line
	}

	number, err := strconv.Atoi(line[match[2]:match[3]])
	if err != nil || number < 1 || number > maxPage*pageNumberSlack {
		return line
	}

	preceding := strings.TrimRight(line[:match[0]], " \t")
	if !endsSentence(preceding) {
		return line
	}

	return preceding
}

func endsSentence(s string) bool {
	if s == "" {
		return false
	}

	switch s[len(s)-1] {
	case '.', '!', '?', '"', '\'', ')', ']':
		return true
	default:
		return false
	}
}
