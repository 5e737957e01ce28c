// Package audio assembles synthesized WAV chunks into a single artifact:
// decoding backend output, concatenating clips with a silence gap, and
// measuring duration.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavAudioFormat is the PCM format tag written into encoded headers.
const wavAudioFormat = 1

// Static errors.
var (
	ErrInvalidWAV     = errors.New("invalid wav data")
	ErrNoClips        = errors.New("no clips to concatenate")
	ErrFormatMismatch = errors.New("clip formats do not match")
)

// Clip is decoded PCM audio with its format.
type Clip struct {
	buffer   *gaudio.IntBuffer
	bitDepth int
}

// NewClip builds a clip from raw PCM samples. Intended for silence
// generation and tests.
func NewClip(samples []int, sampleRate, channels, bitDepth int) *Clip {
	return &Clip{
		buffer: &gaudio.IntBuffer{
			Format: &gaudio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			Data:           samples,
			SourceBitDepth: bitDepth,
		},
		bitDepth: bitDepth,
	}
}

// Decode parses WAV bytes into a clip.
func Decode(data []byte) (*Clip, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav data: %w", err)
	}

	return &Clip{
		buffer:   buffer,
		bitDepth: int(decoder.BitDepth),
	}, nil
}

// SampleRate returns the clip's sample rate in Hz.
func (c *Clip) SampleRate() int {
	return c.buffer.Format.SampleRate
}

// Channels returns the clip's channel count.
func (c *Clip) Channels() int {
	return c.buffer.Format.NumChannels
}

// DurationSeconds returns the clip length in seconds.
func (c *Clip) DurationSeconds() float64 {
	frames := len(c.buffer.Data) / c.buffer.Format.NumChannels

	return float64(frames) / float64(c.buffer.Format.SampleRate)
}

// Silence builds a clip of silence matching the given format.
func Silence(duration time.Duration, sampleRate, channels, bitDepth int) *Clip {
	frames := int(float64(sampleRate) * duration.Seconds())

	return NewClip(make([]int, frames*channels), sampleRate, channels, bitDepth)
}

// Concat joins clips in order, inserting the given silence gap between
// consecutive clips. All clips must share one format; the format of the
// first clip is authoritative.
func Concat(clips []*Clip, gap time.Duration) (*Clip, error) {
	if len(clips) == 0 {
		return nil, ErrNoClips
	}

	first := clips[0]

	for index, clip := range clips[1:] {
		if clip.SampleRate() != first.SampleRate() ||
			clip.Channels() != first.Channels() {
			return nil, fmt.Errorf(
				"%w: clip %d is %dHz/%dch, expected %dHz/%dch",
				ErrFormatMismatch,
				index+1,
				clip.SampleRate(),
				clip.Channels(),
				first.SampleRate(),
				first.Channels(),
			)
		}
	}

	silence := Silence(gap, first.SampleRate(), first.Channels(), first.bitDepth)

	var samples []int

	for index, clip := range clips {
		if index > 0 {
			samples = append(samples, silence.buffer.Data...)
		}

		samples = append(samples, clip.buffer.Data...)
	}

	return NewClip(samples, first.SampleRate(), first.Channels(), first.bitDepth), nil
}

// Encode writes the clip as a WAV stream.
func (c *Clip) Encode(writer io.WriteSeeker) error {
	encoder := wav.NewEncoder(
		writer,
		c.buffer.Format.SampleRate,
		c.bitDepth,
		c.buffer.Format.NumChannels,
		wavAudioFormat,
	)

	err := encoder.Write(c.buffer)
	if err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to finalize wav data: %w", err)
	}

	return nil
}

// WriteFile encodes the clip to a WAV file at path.
func (c *Clip) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	encodeErr := c.Encode(file)
	closeErr := file.Close()

	if encodeErr != nil {
		return encodeErr
	}

	if closeErr != nil {
		return fmt.Errorf("failed to close wav file: %w", closeErr)
	}

	return nil
}

// Bytes encodes the clip to in-memory WAV bytes.
func (c *Clip) Bytes() ([]byte, error) {
	var writer memWriter

	err := c.Encode(&writer)
	if err != nil {
		return nil, err
	}

	return writer.data, nil
}

// memWriter is an in-memory io.WriteSeeker for the WAV encoder, which
// seeks backwards to patch chunk sizes into the header.
type memWriter struct {
	data []byte
	pos  int
}

func (w *memWriter) Write(p []byte) (int, error) {
	if needed := w.pos + len(p); needed > len(w.data) {
		grown := make([]byte, needed)
		copy(grown, w.data)
		w.data = grown
	}

	copy(w.data[w.pos:], p)
	w.pos += len(p)

	return len(p), nil
}

func (w *memWriter) Seek(offset int64, whence int) (int64, error) {
	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(w.pos) + offset
	case io.SeekEnd:
		target = int64(len(w.data)) + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", os.ErrInvalid, whence)
	}

	if target < 0 {
		return 0, fmt.Errorf("%w: negative position", os.ErrInvalid)
	}

	w.pos = int(target)

	return target, nil
}
