package whisper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/speech"
)

var clip = message.AudioPayload{Data: []byte("opus-bytes"), ContentType: "audio/ogg;codecs=opus"}

func TestOpenAIFlavor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-large-v3", r.FormValue("model"))
		assert.Equal(t, "hi", r.FormValue("language"))
		assert.Contains(t, r.FormValue("prompt"), "फसल")

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "audio.ogg", hdr.Filename)
		data, _ := io.ReadAll(f)
		assert.Equal(t, clip.Data, data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  गेहूं में पीले धब्बे  "}`))
	}))
	defer srv.Close()

	r := New(config.WhisperConfig{Endpoint: srv.URL, APIKey: "gsk_test", Model: "whisper-large-v3"})
	text, err := r.SpeechToText(context.Background(), clip, "hi")
	require.NoError(t, err)
	assert.Equal(t, "गेहूं में पीले धब्बे", text)
}

func TestOpenAIFlavor_UnknownLanguageUsesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hi", r.FormValue("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	text, err := New(config.WhisperConfig{Endpoint: srv.URL}).SpeechToText(context.Background(), clip, "xx")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestOpenAIFlavor_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := New(config.WhisperConfig{Endpoint: srv.URL, APIKey: "bad"}).SpeechToText(context.Background(), clip, "en")
	var sErr *speech.Error
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusUnauthorized, sErr.StatusCode)
	assert.Equal(t, speech.OpSpeechToText, sErr.Op)
	assert.Equal(t, "whisper", sErr.Backend)
}

func TestASRFlavor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/asr", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "transcribe", q.Get("task"))
		assert.Equal(t, "pa", q.Get("language"))
		assert.Equal(t, "true", q.Get("vad_filter"))

		f, hdr, err := r.FormFile("audio_file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "audio.ogg", hdr.Filename)

		_, _ = w.Write([]byte(`{"text":"ਸਤ ਸ੍ਰੀ ਅਕਾਲ","language":"pa"}`))
	}))
	defer srv.Close()

	r := New(config.WhisperConfig{Type: "asr", Endpoint: srv.URL + "/asr", VADFilter: true})
	text, err := r.SpeechToText(context.Background(), clip, "pa")
	require.NoError(t, err)
	assert.Equal(t, "ਸਤ ਸ੍ਰੀ ਅਕਾਲ", text)
}

func TestASRFlavor_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(config.WhisperConfig{Type: "asr", Endpoint: srv.URL}).SpeechToText(context.Background(), clip, "hi")
	var sErr *speech.Error
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusInternalServerError, sErr.StatusCode)
}

func TestExtFromContentType(t *testing.T) {
	cases := map[string]string{
		"audio/wav":              ".wav",
		"audio/ogg;codecs=opus":  ".ogg",
		"audio/mpeg":             ".mp3",
		"audio/flac":             ".flac",
		"audio/mp4":              ".m4a",
		"audio/webm;codecs=opus": ".webm",
		"":                       ".webm",
	}
	for ct, want := range cases {
		assert.Equal(t, want, extFromContentType(ct), ct)
	}
}
