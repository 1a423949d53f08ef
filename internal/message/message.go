// Package message defines the value types flowing through the advisory gateway.
//
// Everything here is request-scoped: built at the start of one call and
// discarded at its end. Conversation history is owned by the caller and is
// treated as immutable input.
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Content is the tagged variant carried by a message: either TextContent or
// ImageContent. The unexported marker keeps the set closed so adapters can
// switch over it exhaustively.
type Content interface {
	isContent()
	// Body returns the textual part of the content.
	Body() string
}

// TextContent is plain text.
type TextContent struct {
	Text string `json:"text"`
}

// ImageContent is an image (data URI or URL) with an optional caption.
type ImageContent struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

func (TextContent) isContent()  {}
func (ImageContent) isContent() {}

func (c TextContent) Body() string  { return c.Text }
func (c ImageContent) Body() string { return c.Text }

// Text is shorthand for TextContent{Text: s}.
func Text(s string) Content { return TextContent{Text: s} }

// Message is one turn of a conversation.
type Message struct {
	Role      Role      `json:"role"`
	Content   Content   `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// wireContent is the JSON shape of Content: {"type":"text"|"image", ...}.
type wireContent struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

type wireMessage struct {
	Role      Role            `json:"role"`
	Content   json.RawMessage `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
}

// MarshalJSON encodes Content as a typed object.
func (m Message) MarshalJSON() ([]byte, error) {
	var wc wireContent
	switch c := m.Content.(type) {
	case TextContent:
		wc = wireContent{Type: "text", Text: c.Text}
	case ImageContent:
		wc = wireContent{Type: "image", Text: c.Text, ImageURL: c.ImageURL}
	case nil:
		wc = wireContent{Type: "text"}
	default:
		return nil, fmt.Errorf("unsupported content type %T", c)
	}
	raw, err := json.Marshal(wc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireMessage{Role: m.Role, Content: raw, Timestamp: m.Timestamp})
}

// UnmarshalJSON accepts content either as a bare string or as a typed object.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.Role = w.Role
	m.Timestamp = w.Timestamp

	if len(w.Content) == 0 || string(w.Content) == "null" {
		m.Content = TextContent{}
		return nil
	}

	var s string
	if err := json.Unmarshal(w.Content, &s); err == nil {
		m.Content = TextContent{Text: s}
		return nil
	}

	var wc wireContent
	if err := json.Unmarshal(w.Content, &wc); err != nil {
		return fmt.Errorf("decoding message content: %w", err)
	}
	switch wc.Type {
	case "", "text":
		m.Content = TextContent{Text: wc.Text}
	case "image":
		m.Content = ImageContent{Text: wc.Text, ImageURL: wc.ImageURL}
	default:
		return fmt.Errorf("unknown content type %q", wc.Type)
	}
	return nil
}

// ResponseMode controls what natural-language output a voice caller wants.
type ResponseMode string

const (
	// ResponseModeText returns the reply as text only.
	ResponseModeText ResponseMode = "text"

	// ResponseModeAudio returns synthesized audio only.
	ResponseModeAudio ResponseMode = "audio"

	// ResponseModeTextAudio returns both text and synthesized audio.
	ResponseModeTextAudio ResponseMode = "text+audio"
)

// AudioPayload is recorded speech with its MIME/codec tag. The bytes are
// never mutated; Base64 produces the transmission encoding.
type AudioPayload struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// Base64 returns the standard base64 encoding of the audio bytes.
func (a AudioPayload) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// Empty reports whether the payload carries no audio.
func (a AudioPayload) Empty() bool {
	return len(a.Data) == 0
}

// Source names which backend produced a gateway answer.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// ChatRequest is one conversational turn submitted by a caller.
type ChatRequest struct {
	// Text is the user's utterance, optionally carrying a [LANG:xx] directive.
	Text string `json:"text"`

	// Images are data URIs or URLs attached to the utterance. Only the first
	// is forwarded to the provider.
	Images []string `json:"images,omitempty"`

	// History is the caller-owned conversation so far (oldest first).
	History []Message `json:"history,omitempty"`

	// Language is used when Text carries no directive.
	Language string `json:"language,omitempty"`
}

// ChatResult is the gateway's answer to a ChatRequest.
type ChatResult struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
	Source   Source `json:"source"`
}

// VoiceRequest is a spoken turn: audio in, text and/or audio out.
type VoiceRequest struct {
	Audio        AudioPayload `json:"audio"`
	Language     string       `json:"language"`
	History      []Message    `json:"history,omitempty"`
	ResponseMode ResponseMode `json:"response_mode,omitempty"`
}

// VoiceResult is the outcome of a voice turn.
type VoiceResult struct {
	Transcript string `json:"transcript"`
	Reply      string `json:"reply,omitempty"`
	Language   string `json:"language"`
	Source     Source `json:"source"`

	// ReplyAudio is a ready-to-play data URI.
	ReplyAudio string `json:"reply_audio,omitempty"`

	// AudioError reports a synthesis failure; the text reply is still valid.
	AudioError string `json:"audio_error,omitempty"`
}
