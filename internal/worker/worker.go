// Package worker provides a NATS worker that converts uploaded documents
// to speech.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/book-expert/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/doc2speech/internal/core"
	"github.com/book-expert/doc2speech/internal/preprocess"
	"github.com/book-expert/doc2speech/internal/reader"
)

// handleMessageTimeout bounds one document job end to end. Synthesis of
// long documents dominates; extraction and preprocessing are fast.
const handleMessageTimeout = 10 * time.Minute

const tempFilePermissions = 0o600

var (
	// ErrDocumentKeyEmpty indicates an event without a document key.
	ErrDocumentKeyEmpty = errors.New("document key cannot be empty")
	// ErrFileNameEmpty indicates an event without a file name. The file
	// name's extension selects the document reader.
	ErrFileNameEmpty = errors.New("file name cannot be empty")
)

// Synthesizer is the slice of the synthesis engine the worker needs.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) (*core.SynthesisResult, error)
}

// NatsWorker listens for document jobs on a NATS subject and processes
// them: download, extract, preprocess, synthesize, upload.
type NatsWorker struct {
	natsConnection  *nats.Conn
	subject         string
	documents       core.ObjectStore
	audio           core.ObjectStore
	registry        *reader.Registry
	pipeline        *preprocess.Pipeline
	engine          Synthesizer
	ignoreFootnotes bool
	log             *logger.Logger
}

// NewNatsWorker creates a new instance of a NATS worker. The engine must
// already be initialized; one engine session serves all jobs so model
// resources are not reloaded per document.
func NewNatsWorker(
	natsConnection *nats.Conn,
	subject string,
	documents core.ObjectStore,
	audio core.ObjectStore,
	registry *reader.Registry,
	pipeline *preprocess.Pipeline,
	engine Synthesizer,
	ignoreFootnotes bool,
	log *logger.Logger,
) (*NatsWorker, error) {
	return &NatsWorker{
		natsConnection:  natsConnection,
		subject:         subject,
		documents:       documents,
		audio:           audio,
		registry:        registry,
		pipeline:        pipeline,
		engine:          engine,
		ignoreFootnotes: ignoreFootnotes,
		log:             log,
	}, nil
}

// Run starts the worker and begins listening for messages.
func (w *NatsWorker) Run(ctx context.Context) error {
	sub, err := w.natsConnection.Subscribe(w.subject, w.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.subject, err)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf("failed to drain subscription: %w", drainErr)
	}

	return nil
}

func (w *NatsWorker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleMessageTimeout)
	defer cancel()

	event, err := w.parseAndValidateEvent(msg)
	if err != nil {
		w.log.Error("Failed to parse and validate event: %v", err)

		return
	}

	audioKey, duration, processErr := w.processDocumentJob(ctx, event)
	if processErr != nil {
		w.log.Error(
			"Failed to process document job for workflow %s: %v",
			event.Header.WorkflowID,
			processErr,
		)

		return
	}

	replyEvent := &AudioCreatedEvent{
		Header:          event.Header,
		AudioKey:        audioKey,
		DurationSeconds: duration,
	}

	err = w.publishReplyEvent(msg, replyEvent)
	if err != nil {
		w.log.Error(
			"Failed to publish reply event for workflow %s: %v",
			event.Header.WorkflowID,
			err,
		)
	}
}

// processDocumentJob handles the core logic: download the document,
// extract and preprocess its text, synthesize audio, and upload it.
func (w *NatsWorker) processDocumentJob(
	ctx context.Context,
	event *DocumentUploadedEvent,
) (string, float64, error) {
	documentData, err := w.documents.Download(ctx, event.DocumentKey)
	if err != nil {
		return "", 0, fmt.Errorf(
			"failed to download document for key '%s': %w",
			event.DocumentKey,
			err,
		)
	}

	text, err := w.extractText(documentData, event)
	if err != nil {
		return "", 0, err
	}

	outputPath := filepath.Join(
		os.TempDir(),
		"doc2speech-audio-"+uuid.NewString()+".wav",
	)
	defer w.removeTempFile(outputPath)

	result, err := w.engine.Synthesize(ctx, text, outputPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to synthesize document: %w", err)
	}

	audioData, err := os.ReadFile(result.AudioPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	audioKey := uuid.NewString() + ".wav"

	err = w.audio.Upload(ctx, audioKey, audioData)
	if err != nil {
		return "", 0, fmt.Errorf(
			"failed to upload audio data for key '%s': %w",
			audioKey,
			err,
		)
	}

	return audioKey, result.DurationSeconds, nil
}

// extractText writes the document to a temp file carrying the original
// extension, dispatches it to the format reader, and runs the
// preprocessing pipeline.
func (w *NatsWorker) extractText(
	documentData []byte,
	event *DocumentUploadedEvent,
) (string, error) {
	extension := strings.ToLower(filepath.Ext(event.FileName))

	documentPath := filepath.Join(
		os.TempDir(),
		"doc2speech-doc-"+uuid.NewString()+extension,
	)
	defer w.removeTempFile(documentPath)

	err := os.WriteFile(documentPath, documentData, tempFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to write document temp file: %w", err)
	}

	doc, err := w.registry.Read(documentPath)
	if err != nil {
		return "", fmt.Errorf("failed to read document '%s': %w", event.FileName, err)
	}

	ignoreFootnotes := event.IgnoreFootnotes || w.ignoreFootnotes
	processingCtx := core.NewProcessingContext(doc, ignoreFootnotes)

	text, err := w.pipeline.Process(doc.Text, processingCtx)
	if err != nil {
		return "", fmt.Errorf("failed to preprocess document text: %w", err)
	}

	return text, nil
}

func (w *NatsWorker) removeTempFile(path string) {
	removeErr := os.Remove(path)
	if removeErr != nil && !os.IsNotExist(removeErr) {
		w.log.Warn("Failed to remove temp file '%s': %v", path, removeErr)
	}
}

// publishReplyEvent marshals and responds with the AudioCreatedEvent.
func (w *NatsWorker) publishReplyEvent(msg *nats.Msg, replyEvent *AudioCreatedEvent) error {
	replyData, err := json.Marshal(replyEvent)
	if err != nil {
		return fmt.Errorf("failed to marshal reply event: %w", err)
	}

	err = msg.Respond(replyData)
	if err != nil {
		return fmt.Errorf("failed to publish reply event: %w", err)
	}

	return nil
}

func (w *NatsWorker) parseAndValidateEvent(msg *nats.Msg) (*DocumentUploadedEvent, error) {
	var event DocumentUploadedEvent

	err := json.Unmarshal(msg.Data, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.DocumentKey == "" {
		return nil, ErrDocumentKeyEmpty
	}

	if event.FileName == "" {
		return nil, ErrFileNameEmpty
	}

	return &event, nil
}
