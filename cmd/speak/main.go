// speak is the command-line front end of the document-to-speech
// pipeline: it reads a document, preprocesses its text, and synthesizes
// a WAV file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/book-expert/logger"
	"github.com/joho/godotenv"

	"github.com/book-expert/doc2speech/internal/core"
	"github.com/book-expert/doc2speech/internal/fsutil"
	"github.com/book-expert/doc2speech/internal/language"
	"github.com/book-expert/doc2speech/internal/preprocess"
	"github.com/book-expert/doc2speech/internal/reader"
	"github.com/book-expert/doc2speech/internal/tts"
)

// Flag names.
const (
	flagInput           = "input"
	flagOutput          = "output"
	flagBackend         = "backend"
	flagServiceURL      = "service-url"
	flagBinary          = "binary"
	flagModel           = "model"
	flagLanguage        = "language"
	flagDevice          = "device"
	flagVoiceRef        = "voice-ref"
	flagChunkSize       = "chunk-size"
	flagIgnoreFootnotes = "ignore-footnotes"
	flagVerbose         = "verbose"
)

// Flag descriptions.
const (
	flagInputDesc           = "Input document path (pdf, docx, doc, txt, md, rtf)"
	flagOutputDesc          = "Output file path (.wav)"
	flagBackendDesc         = "Synthesis backend: http, exec, or google"
	flagServiceURLDesc      = "Base URL of the synthesis service (http backend)"
	flagBinaryDesc          = "Synthesis binary path (exec backend)"
	flagModelDesc           = "Model variant: turbo, standard, or multilingual"
	flagLanguageDesc        = "ISO 639-1 language code (empty: detect from text)"
	flagDeviceDesc          = "Device preference: auto, cpu, or cuda"
	flagVoiceRefDesc        = "Voice reference audio file for cloning"
	flagChunkSizeDesc       = "Maximum characters per synthesis call (0: default)"
	flagIgnoreFootnotesDesc = "Drop footnotes instead of reading them inline"
	flagVerboseDesc         = "Enable verbose logging"
)

// Log file names.
const (
	logFileNameDefault = "speak.log"
	logFileNameVerbose = "speak-verbose.log"
)

const synthesisTimeout = 30 * time.Minute

// errInputRequired is returned when no input document is given.
var errInputRequired = errors.New("--input is required")

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	input           string
	output          string
	backend         string
	serviceURL      string
	binary          string
	model           string
	language        string
	device          string
	voiceRef        string
	chunkSize       int
	ignoreFootnotes bool
	verbose         bool
}

func main() {
	err := run()
	if err != nil {
		// A logger might not be initialized yet, so use the standard log package.
		log.Fatalf("Error: %v", err)
	}
}

// run is the main application entry point, returning an error on failure.
func run() error {
	flags := parseFlags()

	if flags.input == "" {
		flag.Usage()

		return errInputRequired
	}

	// Local .env files supplement the environment in development.
	_ = godotenv.Load()

	appLogger, err := setupLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	return convert(ctx, flags, appLogger)
}

// parseFlags defines and parses command-line flags, returning them in a struct.
func parseFlags() appFlags {
	var flags appFlags
	flag.StringVar(&flags.input, flagInput, "", flagInputDesc)
	flag.StringVar(&flags.output, flagOutput, "", flagOutputDesc)
	flag.StringVar(&flags.backend, flagBackend, tts.BackendExec, flagBackendDesc)
	flag.StringVar(&flags.serviceURL, flagServiceURL, "http://localhost:8000", flagServiceURLDesc)
	flag.StringVar(&flags.binary, flagBinary, "", flagBinaryDesc)
	flag.StringVar(&flags.model, flagModel, string(core.ModelTurbo), flagModelDesc)
	flag.StringVar(&flags.language, flagLanguage, "", flagLanguageDesc)
	flag.StringVar(&flags.device, flagDevice, string(core.DeviceAuto), flagDeviceDesc)
	flag.StringVar(&flags.voiceRef, flagVoiceRef, "", flagVoiceRefDesc)
	flag.IntVar(&flags.chunkSize, flagChunkSize, 0, flagChunkSizeDesc)
	flag.BoolVar(&flags.ignoreFootnotes, flagIgnoreFootnotes, false, flagIgnoreFootnotesDesc)
	flag.BoolVar(&flags.verbose, flagVerbose, false, flagVerboseDesc)
	flag.Parse()

	return flags
}

func setupLogger(verbose bool) (*logger.Logger, error) {
	logFileName := logFileNameDefault
	if verbose {
		logFileName = logFileNameVerbose
	}

	logDir := filepath.Join(fsutil.GetCacheDir(), "logs")

	err := fsutil.EnsureDir(logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	appLogger, err := logger.New(logDir, logFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return appLogger, nil
}

// convert runs the full pipeline for one document: read, preprocess,
// synthesize.
func convert(ctx context.Context, flags appFlags, appLogger *logger.Logger) error {
	registry := reader.NewDefaultRegistry()

	doc, err := registry.Read(flags.input)
	if err != nil {
		appLogger.Error("Failed to read document: %v", err)

		return fmt.Errorf("failed to read document: %w", err)
	}

	appLogger.Info(
		"Document read: %d characters, %d footnotes, %d pages",
		len(doc.Text),
		len(doc.Footnotes),
		doc.PageCount,
	)

	pipeline := preprocess.NewDefaultPipeline()
	processingCtx := core.NewProcessingContext(doc, flags.ignoreFootnotes)

	text, err := pipeline.Process(doc.Text, processingCtx)
	if err != nil {
		appLogger.Error("Failed to preprocess text: %v", err)

		return fmt.Errorf("failed to preprocess text: %w", err)
	}

	ttsConfig := buildTTSConfig(flags, text)

	result, err := synthesize(ctx, flags, ttsConfig, text, appLogger)
	if err != nil {
		return err
	}

	fmt.Printf(
		"Generated: %s (%s of audio)\n",
		result.AudioPath,
		fsutil.FormatDuration(result.DurationSeconds),
	)

	return nil
}

// buildTTSConfig assembles the session configuration from flags,
// detecting the language from the document text when none is given and
// the model variant can speak more than English.
func buildTTSConfig(flags appFlags, text string) core.TTSConfig {
	modelType := core.ModelType(flags.model)

	lang := flags.language
	if lang == "" {
		lang = "en"
		if modelType == core.ModelMultilingual {
			lang = language.DetectWithFallback(text, "en")
		}
	}

	return core.TTSConfig{
		ModelType:      modelType,
		Language:       lang,
		Device:         core.Device(flags.device),
		VoiceReference: flags.voiceRef,
		ChunkSize:      flags.chunkSize,
	}
}

func synthesize(
	ctx context.Context,
	flags appFlags,
	ttsConfig core.TTSConfig,
	text string,
	appLogger *logger.Logger,
) (*core.SynthesisResult, error) {
	backend, err := tts.NewBackend(tts.BackendOptions{
		Kind:       flags.backend,
		ServiceURL: flags.serviceURL,
		BinaryPath: flags.binary,
		Timeout:    0,
	}, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesis backend: %w", err)
	}

	engine := tts.NewEngine(backend, appLogger)

	err = engine.Initialize(ctx, ttsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize synthesis engine: %w", err)
	}

	defer func() {
		releaseErr := engine.Release()
		if releaseErr != nil {
			appLogger.Error("Failed to release synthesis engine: %v", releaseErr)
		}
	}()

	synthesisCtx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	defer cancel()

	result, err := engine.Synthesize(synthesisCtx, text, outputPath(flags))
	if err != nil {
		appLogger.Error("Failed to synthesize speech: %v", err)

		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	return result, nil
}

func outputPath(flags appFlags) string {
	if flags.output != "" {
		return flags.output
	}

	base := filepath.Base(flags.input)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return fsutil.SanitizeFilename(base) + ".wav"
}
