package preprocess

import (
	"regexp"
	"strings"

	"github.com/book-expert/doc2speech/internal/core"
)

// SymbolConverterName identifies the symbol conversion step.
const SymbolConverterName = "symbol_converter"

// Regex patterns for symbol conversion.
const (
	periodListRegexPattern    = `(?m)^(\s*)(\d{1,3})\.(\s+)`
	parenListRegexPattern     = `(?m)^(\s*)(\d{1,3})\)(\s+)`
	additionRegexPattern      = `(\d+)\s*\+\s*(\d+)`
	equationRegexPattern      = `(\w+)\s*=\s*(\w+)`
	percentRegexPattern       = `(\d+)%`
	dollarAmountRegexPattern  = `\$(\d+(?:\.\d{2})?)`
	euroAmountRegexPattern    = `€(\d+(?:\.\d{2})?)`
	poundAmountRegexPattern   = `£(\d+(?:\.\d{2})?)`
	numberSignRegexPattern    = `#(\d+)`
	ampersandRegexPattern     = `\s+&\s+`
	bulletMarkerRegexPattern  = `(?m)^\s*[•◦▪▸►]\s*`
	doubleSpacesRegexPattern  = `  +`
)

// SymbolConverter rewrites symbols and list markers into words a
// synthesis backend can pronounce: comparison and arithmetic operators,
// currency amounts, percentages, number signs, ampersands, arrows, and
// bullet or numbered-list markers.
type SymbolConverter struct {
	periodListPattern   *regexp.Regexp
	parenListPattern    *regexp.Regexp
	additionPattern     *regexp.Regexp
	equationPattern     *regexp.Regexp
	percentPattern      *regexp.Regexp
	dollarAmountPattern *regexp.Regexp
	euroAmountPattern   *regexp.Regexp
	poundAmountPattern  *regexp.Regexp
	numberSignPattern   *regexp.Regexp
	ampersandPattern    *regexp.Regexp
	bulletMarkerPattern *regexp.Regexp
	doubleSpacePattern  *regexp.Regexp
	operatorReplacer    *strings.Replacer
}

// NewSymbolConverter creates the step with compiled patterns and the
// multi-character operator replacer.
func NewSymbolConverter() *SymbolConverter {
	return &SymbolConverter{
		periodListPattern:   regexp.MustCompile(periodListRegexPattern),
		parenListPattern:    regexp.MustCompile(parenListRegexPattern),
		additionPattern:     regexp.MustCompile(additionRegexPattern),
		equationPattern:     regexp.MustCompile(equationRegexPattern),
		percentPattern:      regexp.MustCompile(percentRegexPattern),
		dollarAmountPattern: regexp.MustCompile(dollarAmountRegexPattern),
		euroAmountPattern:   regexp.MustCompile(euroAmountRegexPattern),
		poundAmountPattern:  regexp.MustCompile(poundAmountRegexPattern),
		numberSignPattern:   regexp.MustCompile(numberSignRegexPattern),
		ampersandPattern:    regexp.MustCompile(ampersandRegexPattern),
		bulletMarkerPattern: regexp.MustCompile(bulletMarkerRegexPattern),
		doubleSpacePattern:  regexp.MustCompile(doubleSpacesRegexPattern),
		operatorReplacer: strings.NewReplacer(
			">=", " greater than or equal to ",
			"<=", " less than or equal to ",
			"!=", " not equal to ",
			"==", " equals ",
			"->", " arrow ",
			"<-", " arrow ",
			"→", " arrow ",
			"←", " arrow ",
		),
	}
}

// Name identifies this step in pipeline errors.
func (c *SymbolConverter) Name() string {
	return SymbolConverterName
}

// Process rewrites symbols in the text. The context is not consulted;
// symbol conversion depends only on the text itself.
func (c *SymbolConverter) Process(text string, _ core.ProcessingContext) (string, error) {
	result := c.convertListMarkers(text)
	result = c.convertMathExpressions(result)
	result = c.convertStandaloneSymbols(result)

	return c.doubleSpacePattern.ReplaceAllString(result, " "), nil
}

// convertListMarkers turns "1." list heads into "Point 1." and "1)" heads
// into "1." so enumerations read naturally.
func (c *SymbolConverter) convertListMarkers(text string) string {
	result := c.periodListPattern.ReplaceAllString(text, "${1}Point ${2}.${3}")
	result = c.parenListPattern.ReplaceAllString(result, "${1}${2}.${3}")

	return c.bulletMarkerPattern.ReplaceAllString(result, "")
}

func (c *SymbolConverter) convertMathExpressions(text string) string {
	result := c.operatorReplacer.Replace(text)
	result = c.equationPattern.ReplaceAllString(result, "${1} equals ${2}")
	result = c.additionPattern.ReplaceAllString(result, "${1} plus ${2}")

	return c.percentPattern.ReplaceAllString(result, "${1} percent")
}

func (c *SymbolConverter) convertStandaloneSymbols(text string) string {
	result := c.dollarAmountPattern.ReplaceAllString(text, "${1} dollars")
	result = c.euroAmountPattern.ReplaceAllString(result, "${1} euros")
	result = c.poundAmountPattern.ReplaceAllString(result, "${1} pounds")
	result = c.numberSignPattern.ReplaceAllString(result, "number ${1}")

	return c.ampersandPattern.ReplaceAllString(result, " and ")
}
