package worker

import "time"

// EventHeader carries workflow correlation metadata across pipeline
// events.
type EventHeader struct {
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id,omitempty"`
	TenantID   string    `json:"tenant_id,omitempty"`
}

// DocumentUploadedEvent announces a document placed in the document
// bucket that should be converted to speech.
type DocumentUploadedEvent struct {
	Header EventHeader `json:"header"`

	// DocumentKey is the object store key of the uploaded document.
	DocumentKey string `json:"document_key"`

	// FileName is the original file name; its extension selects the
	// document reader.
	FileName string `json:"file_name"`

	// IgnoreFootnotes drops footnotes instead of reading them inline.
	IgnoreFootnotes bool `json:"ignore_footnotes"`
}

// AudioCreatedEvent is the reply published after a document has been
// synthesized and its audio uploaded.
type AudioCreatedEvent struct {
	Header EventHeader `json:"header"`

	// AudioKey is the object store key of the produced WAV artifact.
	AudioKey string `json:"audio_key"`

	// DurationSeconds is the length of the produced audio.
	DurationSeconds float64 `json:"duration_seconds"`
}
