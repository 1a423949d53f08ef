package piper

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer accepts one connection, records the synthesize event and
// answers with the given events.
func fakeServer(t *testing.T, reply func(conn net.Conn)) (addr string, got chan event) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	got = make(chan event, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		evt, _, err := readEvent(bufio.NewReader(conn))
		if err != nil {
			return
		}
		got <- evt
		reply(conn)
	}()
	return ln.Addr().String(), got
}

func TestTextToSpeech_Success(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	addr, got := fakeServer(t, func(conn net.Conn) {
		_ = writeEvent(conn, event{Type: "audio-start", Data: map[string]any{"rate": 16000, "width": 2, "channels": 1}}, nil)
		_ = writeEvent(conn, event{Type: "audio-chunk"}, pcm[:4])
		_ = writeEvent(conn, event{Type: "audio-chunk"}, pcm[4:])
		_ = writeEvent(conn, event{Type: "audio-stop"}, nil)
	})

	s := New(config.PiperConfig{Endpoint: "tcp://" + addr})
	uri, err := s.TextToSpeech(context.Background(), "नमस्ते किसान", "hi")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:audio/wav;base64,"))

	wav, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:audio/wav;base64,"))
	require.NoError(t, err)
	require.Len(t, wav, 44+len(pcm))
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, pcm, wav[44:])

	req := <-got
	assert.Equal(t, "synthesize", req.Type)
	assert.Equal(t, "नमस्ते किसान", req.Data["text"])
	assert.Equal(t, map[string]any{"name": "hi_IN-pratham-medium"}, req.Data["voice"])
}

func TestTextToSpeech_UnknownLanguageUsesDefaultVoice(t *testing.T) {
	addr, got := fakeServer(t, func(conn net.Conn) {
		_ = writeEvent(conn, event{Type: "audio-chunk"}, []byte{0, 0})
		_ = writeEvent(conn, event{Type: "audio-stop"}, nil)
	})

	s := New(config.PiperConfig{Endpoint: addr})
	_, err := s.TextToSpeech(context.Background(), "vanakkam", "ta")
	require.NoError(t, err)
	req := <-got
	assert.Equal(t, map[string]any{"name": "hi_IN-pratham-medium"}, req.Data["voice"])
}

func TestTextToSpeech_ConfiguredVoiceAndEndpoint(t *testing.T) {
	addr, got := fakeServer(t, func(conn net.Conn) {
		_ = writeEvent(conn, event{Type: "audio-chunk"}, []byte{0, 0})
		_ = writeEvent(conn, event{Type: "audio-stop"}, nil)
	})

	s := New(config.PiperConfig{
		Endpoint:  "127.0.0.1:1",
		Endpoints: map[string]string{"en": addr},
		Voices:    map[string]string{"en": "en_GB-alan-medium"},
	})
	_, err := s.TextToSpeech(context.Background(), "hello", "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "en_GB-alan-medium"}, (<-got).Data["voice"])
}

func TestTextToSpeech_ServerErrorIsSpeechError(t *testing.T) {
	addr, _ := fakeServer(t, func(conn net.Conn) {
		_ = writeEvent(conn, event{Type: "error", Data: map[string]any{"text": "voice not found"}}, nil)
	})

	s := New(config.PiperConfig{Endpoint: addr})
	_, err := s.TextToSpeech(context.Background(), "hello", "en")
	var sErr *speech.Error
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, speech.OpTextToSpeech, sErr.Op)
	assert.Contains(t, sErr.Message, "voice not found")
}

func TestTextToSpeech_EmptyText(t *testing.T) {
	s := New(config.PiperConfig{Endpoint: "127.0.0.1:1"})
	_, err := s.TextToSpeech(context.Background(), "  ", "en")
	var sErr *speech.Error
	assert.True(t, errors.As(err, &sErr))
}

func TestReadEvent_InvalidHeader(t *testing.T) {
	_, _, err := readEvent(bufio.NewReader(strings.NewReader("not-a-header\n")))
	assert.Error(t, err)
}

func TestReadEvent_RejectsOversizedFrames(t *testing.T) {
	_, _, err := readEvent(bufio.NewReader(strings.NewReader("2147483647 0\n")))
	assert.ErrorContains(t, err, "exceeds limit")

	_, _, err = readEvent(bufio.NewReader(strings.NewReader("25 9000000000\n{\"type\":\"audio-chunk\"}\n")))
	assert.ErrorContains(t, err, "exceeds limit")
}

func TestReadEvent_AcceptsFrameAtLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEvent(&buf, event{Type: "audio-chunk"}, make([]byte, maxPayloadBytes)))

	evt, payload, err := readEvent(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, "audio-chunk", evt.Type)
	assert.Len(t, payload, maxPayloadBytes)
}
