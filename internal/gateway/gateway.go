// Package gateway implements the advisory façade that every transport calls.
//
// The gateway routes a caller's request to the configured remote backend and
// converts chat and recommendation failures into deterministic fallback
// output, so those operations always answer. Speech has no substitute: its
// errors are returned untouched. The gateway holds no per-call state.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joyal-jij0/pragati/internal/fallback"
	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/provider"
	"github.com/joyal-jij0/pragati/internal/recommend"
	"github.com/joyal-jij0/pragati/internal/speech"
)

// Gateway is the central advisory engine.
type Gateway struct {
	chat        provider.Provider     // nil: fallback replies
	recommender recommend.Recommender // nil: fallback recommendations
	recognizer  speech.Recognizer     // nil: speech-to-text unavailable
	synthesizer speech.Synthesizer    // nil: text-to-speech unavailable
	now         func() time.Time
}

// Option configures a Gateway. Omitting an option leaves that backend unconfigured.
type Option func(*Gateway)

// WithProvider sets the conversational backend.
func WithProvider(p provider.Provider) Option { return func(g *Gateway) { g.chat = p } }

// WithRecommender sets the structured-recommendation backend.
func WithRecommender(r recommend.Recommender) Option {
	return func(g *Gateway) { g.recommender = r }
}

// WithRecognizer sets the speech-to-text backend.
func WithRecognizer(r speech.Recognizer) Option { return func(g *Gateway) { g.recognizer = r } }

// WithSynthesizer sets the text-to-speech backend.
func WithSynthesizer(s speech.Synthesizer) Option { return func(g *Gateway) { g.synthesizer = s } }

// New creates a Gateway from explicit backends.
func New(opts ...Option) *Gateway {
	g := &Gateway{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Backends names the backend serving each path.
type Backends struct {
	Chat         string `json:"chat"`
	Recommend    string `json:"recommend"`
	SpeechToText string `json:"speech_to_text"`
	TextToSpeech string `json:"text_to_speech"`
}

// Backends reports which backend serves each path, for health reporting.
func (g *Gateway) Backends() Backends {
	b := Backends{
		Chat:         string(message.SourceFallback),
		Recommend:    string(message.SourceFallback),
		SpeechToText: "unavailable",
		TextToSpeech: "unavailable",
	}
	if g.chat != nil {
		b.Chat = g.chat.Name()
	}
	if g.recommender != nil {
		b.Recommend = g.recommender.Name()
	}
	if g.recognizer != nil {
		b.SpeechToText = g.recognizer.Name()
	}
	if g.synthesizer != nil {
		b.TextToSpeech = g.synthesizer.Name()
	}
	return b
}

// Chat answers one conversational turn. It never fails: an unconfigured or
// failing provider yields the fallback reply in the requested language.
func (g *Gateway) Chat(ctx context.Context, req message.ChatRequest) *message.ChatResult {
	start := time.Now()
	logger := Logger(ctx)

	text := req.Text
	if _, ok := language.Find(text); !ok && language.Known(req.Language) {
		text = text + " " + language.Directive(req.Language)
	}
	cleaned := language.Strip(text)

	// The caller's history is never mutated; the new turn goes on a copy.
	conversation := make([]message.Message, len(req.History), len(req.History)+1)
	copy(conversation, req.History)
	conversation = append(conversation, g.userMessage(text, req.Images))
	lang := language.FromConversation(conversation)

	result := &message.ChatResult{Language: lang}

	if g.chat == nil {
		logger.Debug("no chat provider configured, using fallback", "language", lang)
		result.Reply = fallback.Reply(cleaned, lang, len(req.Images) > 0)
		result.Source = message.SourceFallback
		return result
	}

	reply, err := g.chat.Reply(ctx, conversation)
	if err != nil {
		logger.Warn("chat provider failed, using fallback", "provider", g.chat.Name(), "language", lang, "error", err)
		result.Reply = fallback.Reply(cleaned, lang, len(req.Images) > 0)
		result.Source = message.SourceFallback
		return result
	}

	result.Reply = reply
	result.Source = message.SourceProvider
	logger.Info("chat answered",
		"provider", g.chat.Name(),
		"language", lang,
		"history", len(req.History),
		"duration_ms", time.Since(start).Milliseconds())
	return result
}

func (g *Gateway) userMessage(text string, images []string) message.Message {
	var content message.Content = message.TextContent{Text: text}
	if len(images) > 0 {
		content = message.ImageContent{Text: text, ImageURL: images[0]}
	}
	return message.Message{Role: message.RoleUser, Content: content, Timestamp: g.now().UTC()}
}

// Calculate computes crop economics.
func (g *Gateway) Calculate(req finance.CalculationRequest) (*finance.CropResult, error) {
	return finance.Calculate(req)
}

// Crops lists the crop catalogue.
func (g *Gateway) Crops() []finance.Crop {
	return finance.Crops()
}

// SpeechToText transcribes audio. Errors are returned untouched.
func (g *Gateway) SpeechToText(ctx context.Context, audio message.AudioPayload, lang string) (string, error) {
	if g.recognizer == nil {
		return "", ErrSpeechToTextUnavailable
	}
	if audio.Empty() {
		return "", ErrEmptyAudio
	}
	return g.recognizer.SpeechToText(ctx, audio, language.Normalize(lang))
}

// TextToSpeech synthesizes text into a data URI. Errors are returned untouched.
func (g *Gateway) TextToSpeech(ctx context.Context, text, lang string) (string, error) {
	if g.synthesizer == nil {
		return "", ErrTextToSpeechUnavailable
	}
	return g.synthesizer.TextToSpeech(ctx, text, language.Normalize(lang))
}

var (
	// ErrSpeechToTextUnavailable wraps speech.ErrUnavailable for the recognition path.
	ErrSpeechToTextUnavailable = fmt.Errorf("speech-to-text: %w", speech.ErrUnavailable)

	// ErrTextToSpeechUnavailable wraps speech.ErrUnavailable for the synthesis path.
	ErrTextToSpeechUnavailable = fmt.Errorf("text-to-speech: %w", speech.ErrUnavailable)

	// ErrEmptyAudio is returned when a speech request carries no audio bytes.
	ErrEmptyAudio = errors.New("audio payload is empty")
)

// resolveResponseMode determines the effective ResponseMode for a voice turn.
// If the caller didn't specify one, the default depends on whether TTS is available.
func (g *Gateway) resolveResponseMode(mode message.ResponseMode) message.ResponseMode {
	switch mode {
	case message.ResponseModeText, message.ResponseModeAudio, message.ResponseModeTextAudio:
		return mode
	default:
		if g.synthesizer != nil {
			return message.ResponseModeTextAudio
		}
		return message.ResponseModeText
	}
}

func wantText(mode message.ResponseMode) bool {
	return mode == message.ResponseModeText || mode == message.ResponseModeTextAudio
}

func wantAudio(mode message.ResponseMode) bool {
	return mode == message.ResponseModeAudio || mode == message.ResponseModeTextAudio
}

// Converse runs a spoken turn: transcribe, answer, then synthesize according
// to the response mode. Transcription errors are returned; a synthesis
// failure is reported in AudioError and the text reply is kept.
func (g *Gateway) Converse(ctx context.Context, req message.VoiceRequest) (*message.VoiceResult, error) {
	start := time.Now()
	logger := Logger(ctx)
	lang := language.Normalize(req.Language)
	mode := g.resolveResponseMode(req.ResponseMode)

	logger.Info("voice turn started", "language", lang, "response_mode", mode, "audio_bytes", len(req.Audio.Data))

	// Step 1: Transcribe.
	transcript, err := g.SpeechToText(ctx, req.Audio, lang)
	if err != nil {
		logger.Error("transcription failed", "error", err)
		return nil, fmt.Errorf("transcribing: %w", err)
	}

	result := &message.VoiceResult{Transcript: transcript, Language: lang}
	if transcript == "" {
		logger.Info("nothing recognised in audio")
		return result, nil
	}

	// Step 2: Answer.
	chat := g.Chat(ctx, message.ChatRequest{Text: transcript, History: req.History, Language: lang})
	result.Language = chat.Language
	result.Source = chat.Source
	if wantText(mode) {
		result.Reply = chat.Reply
	}

	// Step 3: Synthesize.
	if wantAudio(mode) {
		audio, err := g.TextToSpeech(ctx, chat.Reply, chat.Language)
		if err != nil {
			logger.Warn("synthesis failed, continuing without audio", "error", err)
			result.AudioError = err.Error()
			result.Reply = chat.Reply
		} else {
			result.ReplyAudio = audio
		}
	}

	logger.Info("voice turn complete",
		"source", result.Source,
		"has_audio", result.ReplyAudio != "",
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}
