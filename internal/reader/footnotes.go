package reader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Footnote scanning heuristics shared by readers whose formats carry no
// structured footnote markup (PDF, DOC, RTF). Footnote lines are emitted
// in the "[N] body" convention consumed by the preprocessing pipeline.
const (
	maxFootnoteNumber     = 99
	minFootnoteBodyLength = 10
	charsPerPageEstimate  = 3000
	wordsPerPageEstimate  = 500
)

var footnoteLinePattern = regexp.MustCompile(`^[\[(]?(\d{1,2})[\])]?\.?\s+(.+)$`)

// scanNumberedFootnotes collects lines that look like numbered footnotes:
// a small leading number (bare, bracketed, or parenthesized) followed by a
// body of meaningful length. A continuation line that does not start with
// a digit is appended to the preceding footnote.
func scanNumberedFootnotes(text string) []string {
	var (
		footnotes []string
		inSection bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			inSection = false

			continue
		}

		match := footnoteLinePattern.FindStringSubmatch(line)
		if match != nil {
			number, err := strconv.Atoi(match[1])
			if err != nil || number < 1 || number > maxFootnoteNumber {
				inSection = false

				continue
			}

			body := match[2]
			if len(body) < minFootnoteBodyLength {
				inSection = false

				continue
			}

			footnotes = append(footnotes, fmt.Sprintf("[%d] %s", number, body))
			inSection = true

			continue
		}

		if inSection && len(footnotes) > 0 && !startsWithDigit(line) {
			footnotes[len(footnotes)-1] += " " + line
		} else {
			inSection = false
		}
	}

	return footnotes
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// estimatePagesByChars approximates a page count for formats without
// explicit pagination.
func estimatePagesByChars(text string) int {
	pages := len(text) / charsPerPageEstimate
	if pages < 1 {
		return 1
	}

	return pages
}

// estimatePagesByWords approximates a page count from word count.
func estimatePagesByWords(text string) int {
	pages := len(strings.Fields(text)) / wordsPerPageEstimate
	if pages < 1 {
		return 1
	}

	return pages
}
