// main package for the doc2speech service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/book-expert/logger"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/doc2speech/internal/config"
	"github.com/book-expert/doc2speech/internal/objectstore"
	"github.com/book-expert/doc2speech/internal/preprocess"
	"github.com/book-expert/doc2speech/internal/reader"
	"github.com/book-expert/doc2speech/internal/tts"
	"github.com/book-expert/doc2speech/internal/worker"
)

func setupLogger(logPath string) (*logger.Logger, error) {
	log, err := logger.New(logPath, "doc2speech-bootstrap.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create bootstrap logger: %w", err)
	}

	return log, nil
}

func run() error {
	// 1. Create a temporary logger for the bootstrap process
	bootstrapLog, err := setupLogger(os.TempDir())
	if err != nil {
		// If bootstrap logger fails, we can only print to stderr
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	bootstrapLog.Info("Bootstrap logger created.")

	// Local .env files supplement the environment in development.
	_ = godotenv.Load()

	// 2. Load configuration using the central configurator
	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	bootstrapLog.Info("Configuration loaded successfully.")

	// 3. Initialize the final logger based on the loaded configuration
	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	return serve(ctx, cfg, finalLog)
}

// serve wires the NATS transport, object stores, synthesis engine, and
// worker, then blocks until the context is cancelled.
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer natsConnection.Close()

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	documentStore, err := objectstore.New(jetstreamContext, cfg.NATS.DocumentBucket)
	if err != nil {
		return fmt.Errorf("failed to open document bucket: %w", err)
	}

	audioStore, err := objectstore.New(jetstreamContext, cfg.NATS.AudioBucket)
	if err != nil {
		return fmt.Errorf("failed to open audio bucket: %w", err)
	}

	engine, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}

	defer func() {
		releaseErr := engine.Release()
		if releaseErr != nil {
			log.Error("Failed to release synthesis engine: %v", releaseErr)
		}
	}()

	natsWorker, err := worker.NewNatsWorker(
		natsConnection,
		cfg.NATS.DocumentUploadedSubject,
		documentStore,
		audioStore,
		reader.NewDefaultRegistry(),
		preprocess.NewDefaultPipeline(),
		engine,
		cfg.Synthesis.IgnoreFootnotes,
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	log.System(
		"doc2speech successfully initialized. Listening for jobs on subject: %s",
		cfg.NATS.DocumentUploadedSubject,
	)

	err = natsWorker.Run(ctx)
	if err != nil {
		return fmt.Errorf("worker stopped with error: %w", err)
	}

	return nil
}

func buildEngine(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
) (*tts.Engine, error) {
	backend, err := tts.NewBackend(tts.BackendOptions{
		Kind:       cfg.Synthesis.Backend,
		ServiceURL: cfg.Synthesis.ServiceURL,
		BinaryPath: cfg.Synthesis.BinaryPath,
		Timeout:    time.Duration(cfg.Synthesis.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesis backend: %w", err)
	}

	engine := tts.NewEngine(backend, log)

	err = engine.Initialize(ctx, cfg.Synthesis.TTS)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize synthesis engine: %w", err)
	}

	return engine, nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
