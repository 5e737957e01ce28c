// Package preprocess implements the ordered text-transformation pipeline
// run between document extraction and speech synthesis.
//
// Every step is a core.TextPreprocessor: a pure transformation of text
// plus a shared read-only processing context. The pipeline is agnostic to
// which steps are installed, so new transformations can be added without
// touching existing ones.
package preprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/book-expert/doc2speech/internal/core"
)

// Pipeline applies an ordered list of preprocessors sequentially. Order is
// significant and caller-controlled. The pipeline holds no mutable state
// beyond the step list, so concurrent Process calls are safe once Add is
// no longer being called.
type Pipeline struct {
	steps []core.TextPreprocessor
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{steps: nil}
}

// NewDefaultPipeline creates a fresh pipeline with the built-in steps in
// their canonical order: page numbers are stripped before footnote
// handling so a stripped page number can never be mistaken for a footnote
// marker, and symbol conversion runs last on the cleaned text.
func NewDefaultPipeline() *Pipeline {
	pipeline := NewPipeline()
	pipeline.Add(NewPageNumberRemover())
	pipeline.Add(NewFootnoteHandler())
	pipeline.Add(NewSymbolConverter())

	return pipeline
}

// Add appends a step to the pipeline. It returns the pipeline for
// chaining.
func (p *Pipeline) Add(step core.TextPreprocessor) *Pipeline {
	p.steps = append(p.steps, step)

	return p
}

// Steps returns the names of the installed steps in order.
func (p *Pipeline) Steps() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}

	return names
}

// Process folds the step list over the text: each step receives the
// output of the previous one plus the same immutable context. A failing
// step aborts the whole run with core.ErrPreprocessing identifying the
// step, so a broken step never produces partially-corrupted output.
func (p *Pipeline) Process(text string, ctx core.ProcessingContext) (string, error) {
	result := text

	for _, step := range p.steps {
		processed, err := step.Process(result, ctx)
		if err != nil {
			return "", fmt.Errorf(
				"%w: step %q: %w",
				core.ErrPreprocessing,
				step.Name(),
				err,
			)
		}

		result = processed
	}

	return normalizeWhitespace(result), nil
}

var (
	horizontalSpacePattern = regexp.MustCompile(`[ \t]+`)
	blankLineRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// normalizeWhitespace is the pipeline's final cleanup: horizontal
// whitespace runs become single spaces, blank-line runs become single
// paragraph breaks, and every line is trimmed.
func normalizeWhitespace(text string) string {
	text = horizontalSpacePattern.ReplaceAllString(text, " ")
	text = blankLineRunPattern.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
