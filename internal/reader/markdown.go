package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/book-expert/doc2speech/internal/core"
)

// MarkdownReader extracts plain text from Markdown files by walking the
// goldmark AST. Formatting markers disappear with the syntax tree; code
// blocks are dropped; footnote definitions ([^1]: ...) are lifted out of
// the text body into the footnote list.
type MarkdownReader struct {
	markdown goldmark.Markdown
}

// NewMarkdownReader creates a Markdown reader with footnote support.
func NewMarkdownReader() *MarkdownReader {
	return &MarkdownReader{
		markdown: goldmark.New(goldmark.WithExtensions(extension.Footnote)),
	}
}

// SupportedExtensions returns the extensions this reader claims.
func (r *MarkdownReader) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Read parses the Markdown file and returns its plain text and footnotes.
// The page count is estimated from the extracted text length.
func (r *MarkdownReader) Read(path string) (*core.DocumentContent, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown file: %w", err)
	}

	root := r.markdown.Parser().Parse(gmtext.NewReader(source))

	var (
		builder   strings.Builder
		footnotes []string
	)

	walkErr := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if node.Kind() == east.KindFootnote {
			if entering {
				footnote, ok := node.(*east.Footnote)
				if ok {
					body := inlineText(node, source)
					if body != "" {
						footnotes = append(
							footnotes,
							fmt.Sprintf("[%d] %s", footnote.Index, body),
						)
					}
				}
			}

			return ast.WalkSkipChildren, nil
		}

		if entering {
			appendNodeText(&builder, node, source)

			return ast.WalkContinue, nil
		}

		// A blank line after every block keeps paragraph structure;
		// runs of blanks are collapsed afterwards.
		if node.Type() == ast.TypeBlock {
			builder.WriteString("\n\n")
		}

		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk markdown tree: %w", walkErr)
	}

	text := strings.TrimSpace(collapseBlankLines(builder.String()))

	return &core.DocumentContent{
		Text:      text,
		Footnotes: footnotes,
		PageCount: estimatePagesByChars(text),
	}, nil
}

// appendNodeText emits the text content of leaf inline nodes. Marker-only
// inlines (footnote links, emphasis wrappers) have no text leaves of their
// own, so they vanish without special cases.
func appendNodeText(builder *strings.Builder, node ast.Node, source []byte) {
	switch typed := node.(type) {
	case *ast.Text:
		builder.Write(typed.Segment.Value(source))

		if typed.SoftLineBreak() || typed.HardLineBreak() {
			builder.WriteString(" ")
		}
	case *ast.String:
		builder.Write(typed.Value)
	}
}

// inlineText flattens a subtree into a single space-normalized line.
func inlineText(root ast.Node, source []byte) string {
	var builder strings.Builder

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			appendNodeText(&builder, node, source)
		}

		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(builder.String()), " ")
}
