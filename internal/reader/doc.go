package reader

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/book-expert/doc2speech/internal/core"
)

// Defaults for the antiword invocation.
const (
	antiwordBinary      = "antiword"
	antiwordTimeout     = 30 * time.Second
	antiwordNoWrapWidth = "0"
)

// DOCReader extracts text from legacy binary Word documents by calling
// the antiword binary. The binary format predates any workable pure-Go
// parser, so extraction is delegated the same way synthesis backends
// delegate to external tools.
type DOCReader struct {
	binary  string
	timeout time.Duration
}

// NewDOCReader creates a legacy DOC reader using the antiword binary from
// PATH.
func NewDOCReader() *DOCReader {
	return &DOCReader{
		binary:  antiwordBinary,
		timeout: antiwordTimeout,
	}
}

// SupportedExtensions returns the extensions this reader claims.
func (r *DOCReader) SupportedExtensions() []string {
	return []string{".doc"}
}

// Read converts the document to text via antiword. The page count is
// estimated from the extracted text length; footnotes are recovered with
// the shared numbered-line scan since antiword flattens them into the
// text body.
func (r *DOCReader) Read(path string) (*core.DocumentContent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	// -w 0 disables line wrapping so paragraphs stay intact.
	// #nosec G204 -- the binary name is a package constant
	cmd := exec.CommandContext(ctx, r.binary, "-w", antiwordNoWrapWidth, path)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s execution failed: %w", r.binary, err)
	}

	text := string(output)

	return &core.DocumentContent{
		Text:      text,
		Footnotes: scanNumberedFootnotes(text),
		PageCount: estimatePagesByChars(text),
	}, nil
}
