package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/book-expert/logger"
	"github.com/google/uuid"

	"github.com/book-expert/doc2speech/internal/core"
)

// DefaultBinaryName is the synthesis binary invoked when no explicit
// path is configured.
const DefaultBinaryName = "chatterbox-cli"

// ExecBackend implements core.SpeechBackend by shelling out to a local
// synthesis binary. Each chunk is rendered to a uniquely named temp WAV
// file which is read back and removed.
type ExecBackend struct {
	binary string
	log    *logger.Logger
	config core.TTSConfig
}

// NewExecBackend creates a backend invoking the given binary. An empty
// binary selects DefaultBinaryName resolved via PATH.
func NewExecBackend(binary string, log *logger.Logger) *ExecBackend {
	if binary == "" {
		binary = DefaultBinaryName
	}

	return &ExecBackend{
		binary: binary,
		log:    log,
		config: core.TTSConfig{},
	}
}

// Initialize verifies the binary is resolvable and stores the session
// configuration. Model loading happens per invocation inside the binary.
func (b *ExecBackend) Initialize(_ context.Context, cfg core.TTSConfig) error {
	resolved, err := exec.LookPath(b.binary)
	if err != nil {
		return fmt.Errorf("synthesis binary %q not found: %w", b.binary, err)
	}

	b.binary = resolved
	b.config = cfg

	return nil
}

// SynthesizeChunk renders one chunk of text to audio via the binary.
func (b *ExecBackend) SynthesizeChunk(ctx context.Context, text string) ([]byte, error) {
	outputPath := filepath.Join(
		os.TempDir(),
		"doc2speech-chunk-"+uuid.NewString()+".wav",
	)

	defer func() {
		removeErr := os.Remove(outputPath)
		if removeErr != nil && !os.IsNotExist(removeErr) {
			b.log.Warn("Failed to remove temp file '%s': %v", outputPath, removeErr)
		}
	}()

	args := []string{
		"--model", string(b.config.ModelType),
		"--language", b.config.Language,
		"--device", string(b.config.Device),
		"--chunk-chars", strconv.Itoa(b.config.EffectiveChunkSize()),
		"--output", outputPath,
	}

	if b.config.VoiceReference != "" {
		args = append(args, "--voice-ref", b.config.VoiceReference)
	}

	args = append(args, text)

	// #nosec G204 -- arguments are validated via core.TTSConfig validation
	cmd := exec.CommandContext(ctx, b.binary, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf(
			"synthesis binary execution failed: %w - output: %s",
			err,
			string(output),
		)
	}

	audioData, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data from temp file: %w", err)
	}

	return audioData, nil
}

// Release is a no-op; the binary holds no resources between invocations.
func (b *ExecBackend) Release() error {
	return nil
}
