// Package config provides the configuration structure for the
// document-to-speech service.
package config

import (
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
	env "github.com/caarlos0/env/v6"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/book-expert/doc2speech/internal/core"
)

// Default values applied when the configuration file leaves them unset.
const (
	defaultTimeoutSeconds = 300
	defaultBackend        = "exec"
)

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                     string `env:"DOC2SPEECH_NATS_URL"        toml:"url"`
	StreamName              string `toml:"stream_name"`
	ConsumerName            string `toml:"consumer_name"`
	DocumentUploadedSubject string `toml:"document_uploaded_subject"`
	AudioCreatedSubject     string `toml:"audio_created_subject"`
	DocumentBucket          string `toml:"document_bucket"`
	AudioBucket             string `toml:"audio_bucket"`
}

// SynthesisConfig holds backend selection and session defaults.
type SynthesisConfig struct {
	// Backend is one of "http", "exec", "google".
	Backend string `env:"DOC2SPEECH_BACKEND"     toml:"backend"`
	// ServiceURL is the base URL of the synthesis HTTP service.
	ServiceURL string `env:"DOC2SPEECH_SERVICE_URL" toml:"service_url"`
	// BinaryPath overrides the synthesis binary for the exec backend.
	BinaryPath     string `env:"DOC2SPEECH_BINARY"      toml:"binary_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// IgnoreFootnotes drops footnotes instead of reading them inline.
	IgnoreFootnotes bool `env:"DOC2SPEECH_IGNORE_FOOTNOTES" toml:"ignore_footnotes"`
	// TTS holds the per-session synthesis defaults.
	TTS core.TTSConfig `toml:"tts"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
	OutputDir   string `env:"DOC2SPEECH_OUTPUT_DIR" toml:"output_dir"`
}

// Config is the root configuration structure.
type Config struct {
	NATS      NATSConfig      `toml:"nats"`
	Synthesis SynthesisConfig `toml:"synthesis"`
	Paths     PathsConfig     `toml:"paths"`
}

// Load loads the configuration for the service via the project
// configuration discovery chain, then applies environment overrides and
// defaults.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	err = finalize(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile loads the configuration from an explicit TOML file, then
// applies environment overrides and defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg Config

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	err = finalize(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func finalize(cfg *Config) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()

	return nil
}

func (c *Config) applyDefaults() {
	if c.Synthesis.Backend == "" {
		c.Synthesis.Backend = defaultBackend
	}

	if c.Synthesis.TimeoutSeconds <= 0 {
		c.Synthesis.TimeoutSeconds = defaultTimeoutSeconds
	}

	if c.Synthesis.TTS.ModelType == "" {
		c.Synthesis.TTS.ModelType = core.ModelTurbo
	}

	if c.Synthesis.TTS.Language == "" {
		c.Synthesis.TTS.Language = "en"
	}

	if c.Synthesis.TTS.Device == "" {
		c.Synthesis.TTS.Device = core.DeviceAuto
	}
}
