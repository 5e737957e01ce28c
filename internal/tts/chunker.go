package tts

import (
	"strings"
	"unicode"
)

// Chunker splits text into synthesis-sized pieces. Splitting prefers
// sentence boundaries, falls back to phrase boundaries (commas,
// semicolons, colons) and then to word boundaries. A chunk never breaks
// inside a word: a single word longer than the limit becomes its own
// oversized chunk rather than being cut.
type Chunker struct {
	maxChars int
}

// NewChunker creates a chunker with the given character limit per chunk.
func NewChunker(maxChars int) *Chunker {
	return &Chunker{maxChars: maxChars}
}

// Split breaks text into chunks of at most maxChars characters. Empty or
// whitespace-only text yields no chunks.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if len(text) <= c.maxChars {
		return []string{text}
	}

	var chunks []string

	var current strings.Builder

	for _, sentence := range splitSentences(text) {
		if len(sentence) > c.maxChars {
			chunks = flush(chunks, &current)
			chunks = append(chunks, c.splitOversized(sentence)...)

			continue
		}

		if current.Len() > 0 && current.Len()+1+len(sentence) > c.maxChars {
			chunks = flush(chunks, &current)
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}

		current.WriteString(sentence)
	}

	return flush(chunks, &current)
}

// splitOversized breaks a single overlong sentence at phrase boundaries,
// and overlong phrases at word boundaries.
func (c *Chunker) splitOversized(sentence string) []string {
	var chunks []string

	var current strings.Builder

	for _, phrase := range splitPhrases(sentence) {
		if len(phrase) > c.maxChars {
			chunks = flush(chunks, &current)
			chunks = append(chunks, c.splitWords(phrase)...)

			continue
		}

		if current.Len() > 0 && current.Len()+1+len(phrase) > c.maxChars {
			chunks = flush(chunks, &current)
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}

		current.WriteString(phrase)
	}

	return flush(chunks, &current)
}

func (c *Chunker) splitWords(phrase string) []string {
	var chunks []string

	var current strings.Builder

	for _, word := range strings.Fields(phrase) {
		if current.Len() > 0 && current.Len()+1+len(word) > c.maxChars {
			chunks = flush(chunks, &current)
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}

		current.WriteString(word)
	}

	return flush(chunks, &current)
}

func flush(chunks []string, current *strings.Builder) []string {
	if current.Len() == 0 {
		return chunks
	}

	chunks = append(chunks, current.String())
	current.Reset()

	return chunks
}

// splitSentences cuts text after terminal punctuation followed by
// whitespace. Trailing text without terminal punctuation forms the last
// sentence.
func splitSentences(text string) []string {
	var sentences []string

	var current strings.Builder

	runes := []rune(text)

	for index, char := range runes {
		current.WriteRune(char)

		if !isSentenceTerminator(char) {
			continue
		}

		if index+1 == len(runes) || unicode.IsSpace(runes[index+1]) {
			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}

			current.Reset()
		}
	}

	if trailing := strings.TrimSpace(current.String()); trailing != "" {
		sentences = append(sentences, trailing)
	}

	return sentences
}

func isSentenceTerminator(char rune) bool {
	return char == '.' || char == '!' || char == '?'
}

// splitPhrases cuts a sentence after commas, semicolons, and colons.
func splitPhrases(sentence string) []string {
	var phrases []string

	var current strings.Builder

	for _, char := range sentence {
		current.WriteRune(char)

		if char == ',' || char == ';' || char == ':' {
			phrase := strings.TrimSpace(current.String())
			if phrase != "" {
				phrases = append(phrases, phrase)
			}

			current.Reset()
		}
	}

	if trailing := strings.TrimSpace(current.String()); trailing != "" {
		phrases = append(phrases, trailing)
	}

	return phrases
}
