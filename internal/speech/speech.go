// Package speech defines speech recognition and synthesis backends.
//
// Unlike chat and recommendations, speech has no deterministic substitute:
// every failure surfaces to the caller as *Error and nothing is fabricated.
package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/joyal-jij0/pragati/internal/message"
)

// DefaultCodec is the MIME tag recorded audio carries when the caller gives none.
const DefaultCodec = "audio/webm;codecs=opus"

// ErrUnavailable is returned when no backend is configured for a speech path.
var ErrUnavailable = errors.New("speech backend not configured")

// Recognizer converts recorded speech to text.
type Recognizer interface {
	// Name returns the backend identifier (e.g., "google").
	Name() string

	// SpeechToText transcribes audio spoken in lang (a canonical language
	// code). An empty string with a nil error means nothing was recognised.
	SpeechToText(ctx context.Context, audio message.AudioPayload, lang string) (string, error)
}

// Synthesizer converts text to speech.
type Synthesizer interface {
	// Name returns the backend identifier (e.g., "google", "piper").
	Name() string

	// TextToSpeech returns a playable data URI ("data:audio/...;base64,...").
	TextToSpeech(ctx context.Context, text, lang string) (string, error)
}

// Error reports a failed remote speech call.
type Error struct {
	Op         string // speech-to-text, text-to-speech
	Backend    string
	StatusCode int // 0 when no HTTP status was received
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed (status %d): %s", e.Backend, e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Backend, e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Operation names used in Error.Op.
const (
	OpSpeechToText = "speech-to-text"
	OpTextToSpeech = "text-to-speech"
)
