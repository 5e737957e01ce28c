package tts

import (
	"errors"
	"fmt"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/doc2speech/internal/core"
)

// Backend kinds selectable via configuration.
const (
	BackendHTTP   = "http"
	BackendExec   = "exec"
	BackendGoogle = "google"
)

// ErrUnknownBackend indicates an unrecognized backend kind.
var ErrUnknownBackend = errors.New("unknown synthesis backend")

// BackendOptions selects and parameterizes a concrete backend.
type BackendOptions struct {
	// Kind is one of BackendHTTP, BackendExec, BackendGoogle.
	Kind string
	// ServiceURL is the base URL of the synthesis service (http backend).
	ServiceURL string
	// BinaryPath is the synthesis binary (exec backend). Empty selects
	// the default binary resolved via PATH.
	BinaryPath string
	// Timeout bounds individual service requests (http backend).
	Timeout time.Duration
}

// NewBackend constructs the backend named by the options.
func NewBackend(opts BackendOptions, log *logger.Logger) (core.SpeechBackend, error) {
	switch opts.Kind {
	case BackendHTTP:
		return NewHTTPBackend(opts.ServiceURL, opts.Timeout, log), nil
	case BackendExec:
		return NewExecBackend(opts.BinaryPath, log), nil
	case BackendGoogle:
		return NewGoogleBackend(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Kind)
	}
}
