// Package language detects the language of extracted document text so a
// synthesis session can be configured without the caller naming one.
package language

import (
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// maxSampleBytes caps how much text is fed to the detector. Detection
// accuracy plateaus quickly; whole books are unnecessary.
const maxSampleBytes = 4096

// Detect returns the ISO 639-1 code of the dominant language of text, or
// the empty string when detection is unreliable.
func Detect(text string) string {
	info := whatlanggo.Detect(sampleText(text))
	if !info.IsReliable() {
		return ""
	}

	return info.Lang.Iso6391()
}

// DetectWithFallback returns the detected language, or fallback when
// detection is unreliable or yields a code without an ISO 639-1 form.
func DetectWithFallback(text, fallback string) string {
	code := Detect(text)
	if code == "" {
		return fallback
	}

	return code
}

// sampleText truncates text to the sample cap without cutting a rune in
// half.
func sampleText(text string) string {
	if len(text) <= maxSampleBytes {
		return text
	}

	cut := maxSampleBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut]
}
