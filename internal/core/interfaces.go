// Package core defines the data model, capability interfaces, and error
// taxonomy shared by the document-to-speech pipeline.
package core

import (
	"context"
	"errors"
	"strings"
)

// Static errors. Every failure kind a caller may need to distinguish is a
// wrapped sentinel so errors.Is works across package boundaries.
var (
	// ErrUnsupportedFormat indicates that no reader is registered for a
	// file extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrReaderFailure indicates that a registered reader failed to parse
	// a document.
	ErrReaderFailure = errors.New("document reader failed")
	// ErrPreprocessing indicates that a named pipeline step failed.
	ErrPreprocessing = errors.New("preprocessing failed")
	// ErrEngineNotInitialized indicates a synthesis call before Initialize.
	ErrEngineNotInitialized = errors.New("engine not initialized")
	// ErrEngineReleased indicates a call on an engine after Release.
	ErrEngineReleased = errors.New("engine released")
	// ErrEmptyInput indicates empty or whitespace-only synthesis input.
	ErrEmptyInput = errors.New("empty synthesis input")
	// ErrSynthesis indicates a backend failure during audio generation.
	ErrSynthesis = errors.New("synthesis failed")
	// ErrUnsupportedLanguage indicates a language outside the selected
	// model's supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInvalidModelType indicates an unknown model variant.
	ErrInvalidModelType = errors.New("invalid model type")
	// ErrInvalidDevice indicates an unknown device preference.
	ErrInvalidDevice = errors.New("invalid device")
)

// DocumentContent is the immutable result of reading a document.
type DocumentContent struct {
	// Text is the best-effort full extracted text.
	Text string
	// Footnotes holds extracted footnotes in "[N] body" form, in
	// document order. Empty for formats without structured footnotes.
	Footnotes []string
	// PageCount is the page count of the source document, estimated for
	// formats without explicit pagination. Never negative.
	PageCount int
}

// ProcessingContext is the read-only snapshot of cross-cutting parameters
// shared by every preprocessing step of one pipeline run. It is constructed
// once per synthesis request and must not be mutated by any step.
type ProcessingContext struct {
	Footnotes       []string
	IgnoreFootnotes bool
	PageCount       int
}

// NewProcessingContext builds the per-request context from a document.
func NewProcessingContext(doc *DocumentContent, ignoreFootnotes bool) ProcessingContext {
	return ProcessingContext{
		Footnotes:       doc.Footnotes,
		IgnoreFootnotes: ignoreFootnotes,
		PageCount:       doc.PageCount,
	}
}

// ModelType selects the synthesis model variant.
type ModelType string

// Supported model variants.
const (
	ModelTurbo        ModelType = "turbo"
	ModelStandard     ModelType = "standard"
	ModelMultilingual ModelType = "multilingual"
)

// Device selects where the backend places its model.
type Device string

// Supported device preferences.
const (
	DeviceAuto Device = "auto"
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// DefaultChunkSize is the maximum number of characters handed to a backend
// in one synthesis call when the config does not specify a limit.
const DefaultChunkSize = 500

// TTSConfig holds the synthesis parameters for one engine session. It is
// constructed by the caller before engine initialization and immutable for
// the lifetime of the session.
type TTSConfig struct {
	ModelType ModelType `json:"model_type" toml:"model_type"`
	// Language is an ISO 639-1 code. Validated against the multilingual
	// model's supported set when ModelType is multilingual.
	Language string `json:"language" toml:"language"`
	Device   Device `json:"device" toml:"device"`
	// VoiceReference optionally points to a reference audio file for
	// voice cloning. Empty means the backend's default voice.
	VoiceReference string `json:"voice_reference" toml:"voice_reference"`
	// ChunkSize caps the characters per backend call. Zero means
	// DefaultChunkSize.
	ChunkSize int `json:"chunk_size" toml:"chunk_size"`
}

// MultilingualLanguages is the supported language set of the multilingual
// model variant.
var MultilingualLanguages = []string{
	"ar", "da", "de", "el", "en", "es", "fi", "fr", "he", "hi",
	"it", "ja", "ko", "ms", "nl", "no", "pl", "pt", "ru", "sv",
	"sw", "tr", "zh",
}

// Validate checks that the configuration names a known model variant,
// device, and a language the selected variant can speak.
func (c TTSConfig) Validate() error {
	switch c.ModelType {
	case ModelTurbo, ModelStandard, ModelMultilingual:
	default:
		return errorWithDetail(ErrInvalidModelType, string(c.ModelType))
	}

	switch c.Device {
	case DeviceAuto, DeviceCPU, DeviceCUDA:
	default:
		return errorWithDetail(ErrInvalidDevice, string(c.Device))
	}

	for _, lang := range c.SupportedLanguages() {
		if lang == c.Language {
			return nil
		}
	}

	return errorWithDetail(ErrUnsupportedLanguage, c.Language)
}

// SupportedLanguages reports the languages the configured model variant
// can speak. The turbo and standard variants are English-only.
func (c TTSConfig) SupportedLanguages() []string {
	if c.ModelType == ModelMultilingual {
		return MultilingualLanguages
	}

	return []string{"en"}
}

// EffectiveChunkSize returns the configured chunk size or the default.
func (c TTSConfig) EffectiveChunkSize() int {
	if c.ChunkSize > 0 {
		return c.ChunkSize
	}

	return DefaultChunkSize
}

// SynthesisResult describes one successfully produced audio artifact.
type SynthesisResult struct {
	AudioPath       string
	DurationSeconds float64
}

// DocumentReader is the capability implemented by one reader per document
// format.
type DocumentReader interface {
	// SupportedExtensions returns the extensions this reader claims,
	// lowercased with the leading dot (e.g. ".pdf").
	SupportedExtensions() []string
	// Read parses the document at path into its extracted content.
	Read(path string) (*DocumentContent, error)
}

// TextPreprocessor is the capability implemented by one pipeline step. A
// step must be pure with respect to global state and must not mutate the
// shared context.
type TextPreprocessor interface {
	Name() string
	Process(text string, ctx ProcessingContext) (string, error)
}

// ObjectStore is the capability for interacting with a key-value blob
// store holding documents and produced audio.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// SpeechBackend is the capability implemented by a concrete synthesis
// backend. Lifecycle management, input validation, and chunking live in
// the engine; a backend only turns one bounded chunk of text into WAV
// bytes.
type SpeechBackend interface {
	// Initialize loads backend resources. Allowed to be slow.
	Initialize(ctx context.Context, cfg TTSConfig) error
	// SynthesizeChunk turns one chunk of text into WAV-encoded audio.
	SynthesizeChunk(ctx context.Context, text string) ([]byte, error)
	// Release frees backend resources. The backend is unusable after.
	Release() error
}

func errorWithDetail(sentinel error, detail string) error {
	if strings.TrimSpace(detail) == "" {
		detail = "(empty)"
	}

	return &detailError{sentinel: sentinel, detail: detail}
}

type detailError struct {
	sentinel error
	detail   string
}

func (e *detailError) Error() string {
	return e.sentinel.Error() + ": '" + e.detail + "'"
}

func (e *detailError) Unwrap() error {
	return e.sentinel
}
