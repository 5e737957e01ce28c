// Package reader implements the document readers and the extension-based
// registry that dispatches a file path to the reader able to parse it.
package reader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/book-expert/doc2speech/internal/core"
)

// Registry maps file extensions to document readers. The mapping is a
// function: one reader per extension, last registration wins. Callers
// control registration order, typically through NewDefaultRegistry.
//
// The registry holds no mutable state beyond the reader map, so concurrent
// Read calls are safe once registration is finished. Register must not run
// concurrently with Read.
type Registry struct {
	readers map[string]core.DocumentReader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]core.DocumentReader),
	}
}

// NewDefaultRegistry creates a fresh registry wired with every built-in
// reader. It returns a new instance on every call so tests can build
// isolated registries with partial reader sets.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(NewPDFReader())
	registry.Register(NewDOCReader())
	registry.Register(NewDOCXReader())
	registry.Register(NewTextReader())
	registry.Register(NewMarkdownReader())
	registry.Register(NewRTFReader())

	return registry
}

// Register associates every extension the reader declares with that
// reader. Registering an extension that already has a reader replaces the
// previous association.
func (r *Registry) Register(reader core.DocumentReader) {
	for _, ext := range reader.SupportedExtensions() {
		r.readers[strings.ToLower(ext)] = reader
	}
}

// Read determines the extension of path (case-insensitive) and dispatches
// to the matching reader. It fails with core.ErrUnsupportedFormat when no
// reader is registered for the extension and with core.ErrReaderFailure,
// wrapping the underlying cause, when the resolved reader cannot parse the
// file.
func (r *Registry) Read(path string) (*core.DocumentContent, error) {
	ext := strings.ToLower(filepath.Ext(path))

	reader, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %q (supported: %s)",
			core.ErrUnsupportedFormat,
			ext,
			strings.Join(r.SupportedExtensions(), ", "),
		)
	}

	content, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrReaderFailure, ext, err)
	}

	return content, nil
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	extensions := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		extensions = append(extensions, ext)
	}

	sort.Strings(extensions)

	return extensions
}
