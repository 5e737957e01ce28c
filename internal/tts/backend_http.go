package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/doc2speech/internal/core"
)

// DefaultHTTPTimeout bounds each request to the synthesis service. Long
// chunks can take a while on CPU-only deployments.
const DefaultHTTPTimeout = 5 * time.Minute

// HTTPBackend implements core.SpeechBackend against a standalone
// synthesis HTTP service. Initialization performs a health check so a
// missing or unhealthy service fails fast instead of on the first chunk.
type HTTPBackend struct {
	client *HTTPClient
	log    *logger.Logger
	config core.TTSConfig
}

// NewHTTPBackend creates a backend talking to the service at baseURL.
func NewHTTPBackend(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPBackend {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	return &HTTPBackend{
		client: NewHTTPClient(baseURL, timeout),
		log:    log,
		config: core.TTSConfig{},
	}
}

// Initialize verifies the service is reachable and stores the session
// configuration.
func (b *HTTPBackend) Initialize(ctx context.Context, cfg core.TTSConfig) error {
	err := b.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("synthesis service unavailable: %w", err)
	}

	b.config = cfg

	return nil
}

// SynthesizeChunk requests audio for one chunk of text.
func (b *HTTPBackend) SynthesizeChunk(ctx context.Context, text string) ([]byte, error) {
	audioData, err := b.client.GenerateSpeech(ctx, SpeechRequest{
		Text:           text,
		ModelType:      string(b.config.ModelType),
		SpeakerRefPath: b.config.VoiceReference,
		Language:       b.config.Language,
		Temperature:    0,
	})
	if err != nil {
		return nil, fmt.Errorf("speech generation request failed: %w", err)
	}

	return audioData, nil
}

// Release is a no-op; the service owns its own resources.
func (b *HTTPBackend) Release() error {
	return nil
}
