// Package whisper implements speech recognition against Whisper-compatible servers.
//
// Two flavors are supported:
//   - "openai": OpenAI-compatible /audio/transcriptions (Groq, whisper.cpp
//     server, faster-whisper), called through go-openai
//   - "asr":    ahmetoner/whisper-asr-webservice (POST /asr with query params)
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/provider"
	"github.com/joyal-jij0/pragati/internal/speech"
)

const name = "whisper"

// prompt biases recognition towards farming vocabulary in Latin and Devanagari script.
const prompt = "Farming advice: crop, wheat, rice, cotton, fertilizer, pesticide, irrigation, mandi price, " +
	"Kisan Credit Card, PM-KISAN, फसल, गेहूं, धान, खाद, कीटनाशक, सिंचाई, मंडी भाव."

// Recognizer implements speech.Recognizer.
type Recognizer struct {
	flavor    string // "openai" or "asr"
	endpoint  string
	model     string
	vadFilter bool
	api       *openai.Client
	client    *http.Client
}

// New creates a Whisper recognizer from config.
func New(cfg config.WhisperConfig) *Recognizer {
	flavor := cfg.Type
	if flavor == "" {
		flavor = "openai"
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Recognizer{
		flavor:    flavor,
		endpoint:  cfg.Endpoint,
		model:     model,
		vadFilter: cfg.VADFilter,
		api:       openai.NewClientWithConfig(c),
		client:    &http.Client{},
	}
}

// Name returns the backend identifier.
func (r *Recognizer) Name() string { return name }

// SpeechToText transcribes audio in the given language. Silence yields "".
func (r *Recognizer) SpeechToText(ctx context.Context, audio message.AudioPayload, lang string) (string, error) {
	start := time.Now()
	lang = language.Normalize(lang)

	var (
		text string
		err  error
	)
	switch r.flavor {
	case "asr":
		text, err = r.transcribeASR(ctx, audio, lang)
	default:
		text, err = r.transcribeOpenAI(ctx, audio, lang)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	slog.Debug("whisper transcription complete",
		"flavor", r.flavor,
		"language", lang,
		"text_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())
	return text, nil
}

func (r *Recognizer) transcribeOpenAI(ctx context.Context, audio message.AudioPayload, lang string) (string, error) {
	resp, err := r.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    r.model,
		FilePath: "audio" + extFromContentType(audio.ContentType),
		Reader:   bytes.NewReader(audio.Data),
		Prompt:   prompt,
		Language: lang,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", toError(err)
	}
	return resp.Text, nil
}

// toError converts go-openai failures into *speech.Error.
func toError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &speech.Error{
			Op:         speech.OpSpeechToText,
			Backend:    name,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    provider.StatusMessage(apiErr.HTTPStatusCode, apiErr.Message),
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &speech.Error{
			Op:         speech.OpSpeechToText,
			Backend:    name,
			StatusCode: reqErr.HTTPStatusCode,
			Message:    provider.StatusMessage(reqErr.HTTPStatusCode, ""),
			Err:        err,
		}
	}
	return &speech.Error{Op: speech.OpSpeechToText, Backend: name, Message: "request failed", Err: err}
}

// transcribeASR handles the whisper-asr-webservice format.
// API: POST /asr?task=transcribe&language=hi&output=json&vad_filter=true
// Body: multipart/form-data with field "audio_file"
func (r *Recognizer) transcribeASR(ctx context.Context, audio message.AudioPayload, lang string) (string, error) {
	fail := func(msg string, err error) error {
		return &speech.Error{Op: speech.OpSpeechToText, Backend: name, Message: msg, Err: err}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("audio_file", "audio"+extFromContentType(audio.ContentType))
	if err != nil {
		return "", fail("creating form file", err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", fail("writing audio", err)
	}
	if err := writer.Close(); err != nil {
		return "", fail("closing form", err)
	}

	q := make(url.Values)
	q.Set("task", "transcribe")
	q.Set("output", "json")
	q.Set("encode", "true")
	q.Set("language", lang)
	q.Set("initial_prompt", prompt)
	if r.vadFilter {
		q.Set("vad_filter", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"?"+q.Encode(), body)
	if err != nil {
		return "", fail("creating request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fail("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &speech.Error{
			Op:         speech.OpSpeechToText,
			Backend:    name,
			StatusCode: resp.StatusCode,
			Message:    provider.StatusMessage(resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	// The ASR service returns {"text": "...", "language": "..."} when output=json.
	var result struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fail(fmt.Sprintf("decoding response (status %d)", resp.StatusCode), err)
	}
	return result.Text, nil
}

// extFromContentType maps a MIME type to the file extension Whisper servers
// use to pick a decoder.
func extFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "wav"):
		return ".wav"
	case strings.Contains(ct, "ogg"):
		return ".ogg"
	case strings.Contains(ct, "mp3"), strings.Contains(ct, "mpeg"):
		return ".mp3"
	case strings.Contains(ct, "flac"):
		return ".flac"
	case strings.Contains(ct, "m4a"), strings.Contains(ct, "mp4"):
		return ".m4a"
	default:
		// Browser recordings are WebM/Opus unless tagged otherwise.
		return ".webm"
	}
}
