package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/speech"
	"github.com/joyal-jij0/pragati/internal/transport"
)

// WebSocket frame types.
const (
	frameChat       = "chat"
	frameVoiceStart = "voice_start"
	frameVoiceStop  = "voice_stop"
	frameReply      = "reply"
	frameError      = "error"
	frameReady      = "ready"
)

// clientFrame is a JSON text frame sent by the client.
type clientFrame struct {
	Type         string               `json:"type"`
	Text         string               `json:"text,omitempty"`
	Images       []string             `json:"images,omitempty"`
	History      []message.Message    `json:"history,omitempty"`
	Language     string               `json:"language,omitempty"`
	Codec        string               `json:"codec,omitempty"`
	ResponseMode message.ResponseMode `json:"response_mode,omitempty"`
}

// serverFrame is a JSON text frame sent to the client.
type serverFrame struct {
	Type       string         `json:"type"`
	SessionID  string         `json:"session_id,omitempty"`
	Transcript string         `json:"transcript,omitempty"`
	Reply      string         `json:"reply,omitempty"`
	Language   string         `json:"language,omitempty"`
	Source     message.Source `json:"source,omitempty"`
	ReplyAudio string         `json:"reply_audio,omitempty"`
	AudioError string         `json:"audio_error,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// serveWS upgrades the connection and runs a chat/voice session.
//
// @Summary     Chat and streamed voice session
// @Description Text frames: {"type":"chat","text","language"} answered by {"type":"reply"}.
// @Description Voice: {"type":"voice_start","language","codec"}, binary audio frames, then
// @Description {"type":"voice_stop"}; the server replies with the transcript and answer.
// @Tags        chat
// @Success     101  {string}  string  "Switching Protocols"
// @Router      /v1/ws [get]
func (h *handlers) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		gateway.Logger(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxAudioBytes)

	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		svc:    h.svc,
		logger: gateway.Logger(r.Context()),
	}
	s.logger = s.logger.With("session_id", s.id)
	s.run(r.Context())
}

// session is one WebSocket connection. All writes happen on the read loop.
type session struct {
	id     string
	conn   *websocket.Conn
	svc    transport.Service
	logger *slog.Logger

	// Active voice capture, nil between voice_start and voice_stop.
	voice *voiceCapture
}

type voiceCapture struct {
	recorder *speech.Recorder
	pipe     *io.PipeWriter
	language string
	mode     message.ResponseMode
	history  []message.Message
	bytes    int
}

func (s *session) run(ctx context.Context) {
	s.logger.Info("websocket session opened")
	defer s.logger.Info("websocket session closed")
	defer s.abortVoice()

	s.send(serverFrame{Type: frameReady, SessionID: s.id})

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read ended", "error", err)
			}
			return
		}

		switch kind {
		case websocket.BinaryMessage:
			s.audioChunk(data)
		case websocket.TextMessage:
			var f clientFrame
			if err := json.Unmarshal(data, &f); err != nil {
				s.fail("invalid frame: " + err.Error())
				continue
			}
			s.handle(ctx, f)
		}
	}
}

func (s *session) handle(ctx context.Context, f clientFrame) {
	switch f.Type {
	case frameChat:
		res := s.svc.Chat(ctx, message.ChatRequest{Text: f.Text, Images: f.Images, History: f.History, Language: f.Language})
		s.send(serverFrame{Type: frameReply, Reply: res.Reply, Language: res.Language, Source: res.Source})
	case frameVoiceStart:
		s.startVoice(f)
	case frameVoiceStop:
		s.stopVoice(ctx)
	default:
		s.fail("unknown frame type " + f.Type)
	}
}

func (s *session) startVoice(f clientFrame) {
	if s.voice != nil {
		s.fail(speech.ErrRecording.Error())
		return
	}
	pr, pw := io.Pipe()
	rec := speech.NewRecorder()
	open := func() (io.ReadCloser, error) { return pr, nil }
	if err := rec.StartRecording(open, f.Codec); err != nil {
		s.fail(err.Error())
		return
	}
	s.voice = &voiceCapture{recorder: rec, pipe: pw, language: f.Language, mode: f.ResponseMode, history: f.History}
	s.logger.Debug("voice capture started", "language", f.Language, "codec", f.Codec)
}

func (s *session) audioChunk(data []byte) {
	if s.voice == nil {
		s.fail("audio received outside a voice session")
		return
	}
	s.voice.bytes += len(data)
	if s.voice.bytes > maxAudioBytes {
		s.abortVoice()
		s.fail("audio exceeds size limit")
		return
	}
	if _, err := s.voice.pipe.Write(data); err != nil {
		s.abortVoice()
		s.fail("buffering audio: " + err.Error())
	}
}

func (s *session) stopVoice(ctx context.Context) {
	v := s.voice
	if v == nil {
		s.fail(speech.ErrNotRecording.Error())
		return
	}
	s.voice = nil

	_ = v.pipe.Close()
	audio, err := v.recorder.Stop()
	if err != nil {
		s.fail(err.Error())
		return
	}

	res, err := s.svc.Converse(ctx, message.VoiceRequest{Audio: audio, Language: v.language, History: v.history, ResponseMode: v.mode})
	if err != nil {
		s.logger.Error("voice turn failed", "error", err)
		s.fail(err.Error())
		return
	}
	s.send(serverFrame{
		Type:       frameReply,
		Transcript: res.Transcript,
		Reply:      res.Reply,
		Language:   res.Language,
		Source:     res.Source,
		ReplyAudio: res.ReplyAudio,
		AudioError: res.AudioError,
	})
}

// abortVoice discards any capture in progress.
func (s *session) abortVoice() {
	if s.voice == nil {
		return
	}
	_ = s.voice.pipe.CloseWithError(errors.New("voice capture aborted"))
	_, _ = s.voice.recorder.Stop()
	s.voice = nil
}

func (s *session) fail(msg string) {
	s.send(serverFrame{Type: frameError, Error: msg})
}

func (s *session) send(f serverFrame) {
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Debug("websocket write failed", "error", err)
	}
}
