// Package config_test tests the configuration loading for the service.
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/doc2speech/internal/config"
	"github.com/book-expert/doc2speech/internal/core"
)

const sampleTOML = `
[nats]
url = "nats://127.0.0.1:4222"
stream_name = "DOC2SPEECH_JOBS"
consumer_name = "doc2speech-workers"
document_uploaded_subject = "document.uploaded"
audio_created_subject = "audio.created"
document_bucket = "DOCUMENT_FILES"
audio_bucket = "AUDIO_FILES"

[synthesis]
backend = "http"
service_url = "http://localhost:8000"
timeout_seconds = 120
ignore_footnotes = true

[synthesis.tts]
model_type = "multilingual"
language = "de"
device = "cuda"
chunk_size = 400

[paths]
base_logs_dir = "/var/log/doc2speech"
output_dir = "/var/lib/doc2speech/audio"
`

func TestUnmarshalConfig(t *testing.T) {
	t.Parallel()

	var cfg config.Config

	err := toml.Unmarshal([]byte(sampleTOML), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "DOC2SPEECH_JOBS", cfg.NATS.StreamName)
	assert.Equal(t, "doc2speech-workers", cfg.NATS.ConsumerName)
	assert.Equal(t, "document.uploaded", cfg.NATS.DocumentUploadedSubject)
	assert.Equal(t, "audio.created", cfg.NATS.AudioCreatedSubject)
	assert.Equal(t, "DOCUMENT_FILES", cfg.NATS.DocumentBucket)
	assert.Equal(t, "AUDIO_FILES", cfg.NATS.AudioBucket)
	assert.Equal(t, "http", cfg.Synthesis.Backend)
	assert.Equal(t, "http://localhost:8000", cfg.Synthesis.ServiceURL)
	assert.Equal(t, 120, cfg.Synthesis.TimeoutSeconds)
	assert.True(t, cfg.Synthesis.IgnoreFootnotes)
	assert.Equal(t, core.ModelMultilingual, cfg.Synthesis.TTS.ModelType)
	assert.Equal(t, "de", cfg.Synthesis.TTS.Language)
	assert.Equal(t, core.DeviceCUDA, cfg.Synthesis.TTS.Device)
	assert.Equal(t, 400, cfg.Synthesis.TTS.ChunkSize)
	assert.Equal(t, "/var/log/doc2speech", cfg.Paths.BaseLogsDir)
	assert.Equal(t, "/var/lib/doc2speech/audio", cfg.Paths.OutputDir)
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc2speech.toml")

	minimal := `
[nats]
url = "nats://127.0.0.1:4222"
`
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "exec", cfg.Synthesis.Backend)
	assert.Equal(t, 300, cfg.Synthesis.TimeoutSeconds)
	assert.Equal(t, core.ModelTurbo, cfg.Synthesis.TTS.ModelType)
	assert.Equal(t, "en", cfg.Synthesis.TTS.Language)
	assert.Equal(t, core.DeviceAuto, cfg.Synthesis.TTS.Device)
}

func TestLoadFileEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc2speech.toml")

	minimal := `
[synthesis]
backend = "exec"
`
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	t.Setenv("DOC2SPEECH_BACKEND", "http")
	t.Setenv("DOC2SPEECH_SERVICE_URL", "http://tts.internal:8000")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Synthesis.Backend)
	assert.Equal(t, "http://tts.internal:8000", cfg.Synthesis.ServiceURL)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
