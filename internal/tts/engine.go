// Package tts turns preprocessed text into audio. The Engine owns the
// session lifecycle, chunking, and audio assembly; the pluggable
// core.SpeechBackend turns individual chunks into WAV bytes.
package tts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/doc2speech/internal/audio"
	"github.com/book-expert/doc2speech/internal/core"
	"github.com/book-expert/doc2speech/internal/fsutil"
)

// DefaultChunkGap is the silence inserted between consecutive chunks so
// chunk boundaries do not produce abrupt audio joins.
const DefaultChunkGap = 300 * time.Millisecond

type engineState int

const (
	stateUninitialized engineState = iota
	stateInitialized
	stateReleased
)

// Engine drives speech synthesis for one configured session. It enforces
// the Initialize/Synthesize/Release lifecycle, validates input, splits
// text into backend-sized chunks, and assembles the per-chunk audio into
// one WAV artifact.
//
// All methods are safe for concurrent use; synthesis calls are
// serialized because backends hold heavyweight single-session resources.
type Engine struct {
	backend core.SpeechBackend
	log     *logger.Logger
	gap     time.Duration

	mu      sync.Mutex
	state   engineState
	config  core.TTSConfig
	chunker *Chunker
}

// NewEngine creates an engine around the given backend. The engine must
// be initialized before synthesis.
func NewEngine(backend core.SpeechBackend, log *logger.Logger) *Engine {
	return &Engine{
		backend: backend,
		log:     log,
		gap:     DefaultChunkGap,
		state:   stateUninitialized,
		config:  core.TTSConfig{},
		chunker: nil,
	}
}

// Initialize validates the configuration and loads backend resources.
// Initializing an already-initialized engine reconfigures it in place.
func (e *Engine) Initialize(ctx context.Context, cfg core.TTSConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateReleased {
		return core.ErrEngineReleased
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid synthesis configuration: %w", err)
	}

	err = e.backend.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize synthesis backend: %w", err)
	}

	e.config = cfg
	e.chunker = NewChunker(cfg.EffectiveChunkSize())
	e.state = stateInitialized

	e.log.Info(
		"Synthesis engine initialized: model=%s language=%s device=%s chunk_size=%d",
		cfg.ModelType,
		cfg.Language,
		cfg.Device,
		cfg.EffectiveChunkSize(),
	)

	return nil
}

// Config returns the active session configuration.
func (e *Engine) Config() core.TTSConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.config
}

// Synthesize converts text to speech and writes a WAV file at outputPath,
// creating parent directories as needed. Cancelling the context aborts
// the run between chunks; no partial output file is written.
func (e *Engine) Synthesize(
	ctx context.Context,
	text string,
	outputPath string,
) (*core.SynthesisResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case stateReleased:
		return nil, core.ErrEngineReleased
	case stateUninitialized:
		return nil, core.ErrEngineNotInitialized
	case stateInitialized:
	}

	if strings.TrimSpace(text) == "" {
		return nil, core.ErrEmptyInput
	}

	chunks := e.chunker.Split(text)

	clips, err := e.synthesizeChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	combined, err := audio.Concat(clips, e.gap)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to assemble audio: %w", core.ErrSynthesis, err)
	}

	err = fsutil.EnsureDir(filepath.Dir(outputPath))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}

	err = combined.WriteFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to write audio output: %w", err)
	}

	result := &core.SynthesisResult{
		AudioPath:       outputPath,
		DurationSeconds: combined.DurationSeconds(),
	}

	e.log.Info(
		"Synthesis complete: %d chunks, %.1fs of audio, output %s",
		len(chunks),
		result.DurationSeconds,
		outputPath,
	)

	return result, nil
}

func (e *Engine) synthesizeChunks(
	ctx context.Context,
	chunks []string,
) ([]*audio.Clip, error) {
	clips := make([]*audio.Clip, 0, len(chunks))

	for index, chunk := range chunks {
		err := ctx.Err()
		if err != nil {
			return nil, fmt.Errorf(
				"%w: aborted before chunk %d of %d: %w",
				core.ErrSynthesis,
				index+1,
				len(chunks),
				err,
			)
		}

		data, err := e.backend.SynthesizeChunk(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: chunk %d of %d: %w",
				core.ErrSynthesis,
				index+1,
				len(chunks),
				err,
			)
		}

		clip, err := audio.Decode(data)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: chunk %d of %d produced undecodable audio: %w",
				core.ErrSynthesis,
				index+1,
				len(chunks),
				err,
			)
		}

		clips = append(clips, clip)
	}

	return clips, nil
}

// Release frees backend resources. The engine is permanently unusable
// afterwards; Release on a released engine is a no-op.
func (e *Engine) Release() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateReleased {
		return nil
	}

	previous := e.state
	e.state = stateReleased

	if previous != stateInitialized {
		return nil
	}

	err := e.backend.Release()
	if err != nil {
		return fmt.Errorf("failed to release synthesis backend: %w", err)
	}

	return nil
}
