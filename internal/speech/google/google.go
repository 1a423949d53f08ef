// Package google implements speech recognition and synthesis against the
// Google Cloud Speech-to-Text and Text-to-Speech REST APIs using an API key.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/provider"
	"github.com/joyal-jij0/pragati/internal/speech"
)

const name = "google"

// phraseHints bias recognition toward farming vocabulary in both scripts.
var phraseHints = []string{
	"crop", "weather", "market", "price", "scheme", "subsidy", "disease",
	"फसल", "मौसम", "बाजार", "मूल्य", "योजना", "सब्सिडी", "रोग",
}

// Client talks to the Google Cloud speech REST endpoints.
type Client struct {
	apiKey string
	sttURL string
	ttsURL string
	client *http.Client
}

// New creates a Google speech client from config.
func New(cfg config.GoogleSpeechConfig) *Client {
	return &Client{
		apiKey: cfg.APIKey,
		sttURL: cfg.STTURL,
		ttsURL: cfg.TTSURL,
		client: &http.Client{},
	}
}

// Name returns the backend identifier.
func (c *Client) Name() string { return name }

// SpeechToText transcribes audio and returns the first alternative of the
// first result, or "" when nothing was recognised.
func (c *Client) SpeechToText(ctx context.Context, audio message.AudioPayload, lang string) (string, error) {
	encoding, sampleRate := encodingFor(audio.ContentType)
	req := recognizeRequest{
		Config: recognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: sampleRate,
			LanguageCode:    language.Locale(lang),
			Model:           "default",
			SpeechContexts:  []speechContext{{Phrases: phraseHints}},
		},
		Audio: recognitionAudio{Content: audio.Base64()},
	}

	var resp recognizeResponse
	if err := c.post(ctx, speech.OpSpeechToText, c.sttURL, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		slog.Debug("speech-to-text returned no results", "language", lang, "audio_bytes", len(audio.Data))
		return "", nil
	}
	transcript := resp.Results[0].Alternatives[0].Transcript
	slog.Debug("speech-to-text complete", "language", lang, "encoding", encoding, "text_length", len(transcript))
	return transcript, nil
}

// TextToSpeech synthesizes MP3 speech and returns it as a data URI.
func (c *Client) TextToSpeech(ctx context.Context, text, lang string) (string, error) {
	req := synthesizeRequest{
		Input:       synthesisInput{Text: text},
		Voice:       voiceSelection{LanguageCode: language.Locale(lang), SSMLGender: "NEUTRAL"},
		AudioConfig: audioConfig{AudioEncoding: "MP3"},
	}

	var resp synthesizeResponse
	if err := c.post(ctx, speech.OpTextToSpeech, c.ttsURL, req, &resp); err != nil {
		return "", err
	}
	if resp.AudioContent == "" {
		return "", &speech.Error{Op: speech.OpTextToSpeech, Backend: name, Message: "empty audio content"}
	}

	slog.Debug("text-to-speech complete", "language", lang, "text_length", len(text), "audio_b64_length", len(resp.AudioContent))
	return "data:audio/mp3;base64," + resp.AudioContent, nil
}

func (c *Client) post(ctx context.Context, op, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &speech.Error{Op: op, Backend: name, Message: "marshalling request", Err: err}
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return &speech.Error{Op: op, Backend: name, Message: "invalid endpoint", Err: err}
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return &speech.Error{Op: op, Backend: name, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &speech.Error{Op: op, Backend: name, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(respBody, &apiErr)
		slog.Warn("speech api error", "op", op, "status", resp.StatusCode, "detail", apiErr.Error.Message)
		return &speech.Error{
			Op:         op,
			Backend:    name,
			StatusCode: resp.StatusCode,
			Message:    provider.StatusMessage(resp.StatusCode, apiErr.Error.Message),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &speech.Error{Op: op, Backend: name, Message: "decoding response", Err: err}
	}
	return nil
}

// encodingFor maps a recording MIME type to the recognizer's encoding. WAV
// and FLAC carry their sample rate in the header, so none is sent for them.
func encodingFor(contentType string) (string, int) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "webm"):
		return "WEBM_OPUS", 48000
	case strings.Contains(ct, "ogg"):
		return "OGG_OPUS", 48000
	case strings.Contains(ct, "wav"):
		return "LINEAR16", 0
	case strings.Contains(ct, "flac"):
		return "FLAC", 0
	default:
		return "WEBM_OPUS", 48000
	}
}

// --- Wire types ---

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognitionConfig struct {
	Encoding        string          `json:"encoding"`
	SampleRateHertz int             `json:"sampleRateHertz,omitempty"`
	LanguageCode    string          `json:"languageCode"`
	Model           string          `json:"model"`
	SpeechContexts  []speechContext `json:"speechContexts"`
}

type speechContext struct {
	Phrases []string `json:"phrases"`
}

type recognitionAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	SSMLGender   string `json:"ssmlGender"`
}

type audioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}
