package tts

import (
	"context"
	"fmt"
	"strings"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/book-expert/logger"

	"github.com/book-expert/doc2speech/internal/core"
)

// googleSampleRate is requested for LINEAR16 output so every chunk shares
// one format and concatenation never needs resampling.
const googleSampleRate = 24000

// googleRegions maps bare ISO 639-1 codes to the BCP-47 voice locales the
// Cloud API expects. Codes not listed fall back to "<code>-<CODE>".
var googleRegions = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"pt": "pt-BR",
	"zh": "cmn-CN",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"ar": "ar-XA",
	"hi": "hi-IN",
	"sv": "sv-SE",
	"da": "da-DK",
	"he": "he-IL",
	"el": "el-GR",
	"ms": "ms-MY",
	"sw": "sw-KE",
}

// GoogleBackend implements core.SpeechBackend against the Google Cloud
// Text-to-Speech API. Output is requested as LINEAR16, which the API
// returns as WAV-encoded bytes.
type GoogleBackend struct {
	client       *gctts.Client
	log          *logger.Logger
	languageCode string
	voiceName    string
}

// NewGoogleBackend creates an uninitialized backend. Credentials are
// resolved by the SDK from the environment during Initialize.
func NewGoogleBackend(log *logger.Logger) *GoogleBackend {
	return &GoogleBackend{
		client:       nil,
		log:          log,
		languageCode: "",
		voiceName:    "",
	}
}

// Initialize creates the API client and resolves the voice locale. The
// VoiceReference field selects a named cloud voice rather than a local
// reference file.
func (b *GoogleBackend) Initialize(ctx context.Context, cfg core.TTSConfig) error {
	client, err := gctts.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create cloud synthesis client: %w", err)
	}

	b.client = client
	b.languageCode = googleLanguageCode(cfg.Language)
	b.voiceName = cfg.VoiceReference

	return nil
}

// SynthesizeChunk requests LINEAR16 audio for one chunk of text.
func (b *GoogleBackend) SynthesizeChunk(ctx context.Context, text string) ([]byte, error) {
	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: b.languageCode,
			Name:         b.voiceName,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_LINEAR16,
			SampleRateHertz: googleSampleRate,
		},
	}

	resp, err := b.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("cloud synthesis request failed: %w", err)
	}

	audioData := resp.GetAudioContent()
	if len(audioData) == 0 {
		return nil, fmt.Errorf("cloud synthesis returned empty audio for %q", b.languageCode)
	}

	return audioData, nil
}

// Release closes the API client.
func (b *GoogleBackend) Release() error {
	if b.client == nil {
		return nil
	}

	err := b.client.Close()
	b.client = nil

	if err != nil {
		return fmt.Errorf("failed to close cloud synthesis client: %w", err)
	}

	return nil
}

func googleLanguageCode(language string) string {
	if code, ok := googleRegions[language]; ok {
		return code
	}

	return language + "-" + strings.ToUpper(language)
}
