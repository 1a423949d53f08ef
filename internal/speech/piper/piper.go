// Package piper implements speech synthesis using a Piper Wyoming protocol server.
//
// Piper is a fast, local neural text-to-speech system. The linuxserver/piper
// container exposes the Wyoming protocol on TCP port 10200. Each synthesis
// opens one connection, sends a synthesize event and collects the
// audio-start, audio-chunk and audio-stop events that follow.
package piper

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/speech"
)

const name = "piper"

// maxAudioBytes caps the PCM collected for one synthesis.
const maxAudioBytes = 32 << 20

// defaultVoices maps canonical language codes to Piper voice models. Codes
// without a voice use the default language's voice.
var defaultVoices = map[string]string{
	"hi": "hi_IN-pratham-medium",
	"te": "te_IN-maya-medium",
	"en": "en_US-lessac-medium",
}

// Synthesizer implements speech.Synthesizer over the Wyoming protocol.
type Synthesizer struct {
	endpoint  string            // default host:port of the Piper server
	endpoints map[string]string // language -> host:port for per-language instances
	voices    map[string]string // language -> voice name
	dialer    net.Dialer
}

// New creates a Piper synthesizer from config.
func New(cfg config.PiperConfig) *Synthesizer {
	voices := make(map[string]string, len(defaultVoices)+len(cfg.Voices))
	for k, v := range defaultVoices {
		voices[k] = v
	}
	for k, v := range cfg.Voices {
		voices[strings.ToLower(k)] = v
	}

	endpoints := make(map[string]string, len(cfg.Endpoints))
	for lang, ep := range cfg.Endpoints {
		endpoints[strings.ToLower(lang)] = cleanEndpoint(ep)
	}

	return &Synthesizer{
		endpoint:  cleanEndpoint(cfg.Endpoint),
		endpoints: endpoints,
		voices:    voices,
		dialer:    net.Dialer{Timeout: 10 * time.Second},
	}
}

func cleanEndpoint(ep string) string {
	ep = strings.TrimPrefix(ep, "tcp://")
	return strings.TrimPrefix(ep, "http://")
}

// Name returns the backend identifier.
func (s *Synthesizer) Name() string { return name }

// voiceFor resolves the voice and server for a language.
func (s *Synthesizer) voiceFor(lang string) (voice, endpoint string) {
	voice = s.voices[lang]
	if voice == "" {
		voice = s.voices[language.Default]
	}
	endpoint = s.endpoints[lang]
	if endpoint == "" {
		endpoint = s.endpoint
	}
	return voice, endpoint
}

// TextToSpeech synthesizes text and returns a WAV data URI.
func (s *Synthesizer) TextToSpeech(ctx context.Context, text, lang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &speech.Error{Op: speech.OpTextToSpeech, Backend: name, Message: "empty text for synthesis"}
	}

	voice, endpoint := s.voiceFor(language.Normalize(lang))
	if endpoint == "" {
		return "", &speech.Error{Op: speech.OpTextToSpeech, Backend: name, Message: fmt.Sprintf("no endpoint configured for language %q", lang)}
	}

	start := time.Now()
	wav, err := s.synthesize(ctx, endpoint, text, voice)
	if err != nil {
		return "", &speech.Error{Op: speech.OpTextToSpeech, Backend: name, Message: err.Error(), Err: err}
	}

	slog.Debug("piper synthesis complete",
		"voice", voice,
		"endpoint", endpoint,
		"text_length", len(text),
		"wav_bytes", len(wav),
		"duration_ms", time.Since(start).Milliseconds())
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav), nil
}

func (s *Synthesizer) synthesize(ctx context.Context, endpoint, text, voice string) ([]byte, error) {
	conn, err := s.dialer.DialContext(ctx, "tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("connecting to piper: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(30 * time.Second))
	}

	req := event{
		Type: "synthesize",
		Data: map[string]any{
			"text":  text,
			"voice": map[string]any{"name": voice},
		},
	}
	if err := writeEvent(conn, req, nil); err != nil {
		return nil, fmt.Errorf("sending synthesize event: %w", err)
	}

	var (
		pcm        bytes.Buffer
		sampleRate = 22050
		channels   = 1
		width      = 2
		r          = bufio.NewReader(conn)
	)
	for {
		evt, payload, err := readEvent(r)
		if err != nil {
			return nil, fmt.Errorf("reading piper event: %w", err)
		}

		switch evt.Type {
		case "audio-start":
			sampleRate = evt.number("rate", sampleRate)
			channels = evt.number("channels", channels)
			width = evt.number("width", width)
		case "audio-chunk":
			if pcm.Len()+len(payload) > maxAudioBytes {
				return nil, fmt.Errorf("piper audio exceeds %d bytes", maxAudioBytes)
			}
			pcm.Write(payload)
		case "audio-stop":
			if pcm.Len() == 0 {
				return nil, fmt.Errorf("piper returned no audio")
			}
			return pcmToWAV(pcm.Bytes(), sampleRate, channels, width), nil
		case "error":
			msg := evt.text("text")
			if msg == "" {
				msg = "unknown error"
			}
			return nil, fmt.Errorf("piper error: %s", msg)
		default:
			slog.Debug("piper unknown event", "type", evt.Type)
		}
	}
}
