package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.GoogleSpeechConfig{
		APIKey: "test-key",
		STTURL: srv.URL + "/v1/speech:recognize",
		TTSURL: srv.URL + "/v1/text:synthesize",
	})
}

func TestSpeechToText_Success(t *testing.T) {
	var got recognizeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech:recognize", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"results":[{"alternatives":[{"transcript":"गेहूं का भाव क्या है","confidence":0.92}]},{"alternatives":[{"transcript":"ignored"}]}]}`))
	})

	audio := message.AudioPayload{Data: []byte{0x1a, 0x45, 0xdf, 0xa3}, ContentType: "audio/webm;codecs=opus"}
	text, err := c.SpeechToText(context.Background(), audio, "hi")
	require.NoError(t, err)
	assert.Equal(t, "गेहूं का भाव क्या है", text)

	assert.Equal(t, "WEBM_OPUS", got.Config.Encoding)
	assert.Equal(t, 48000, got.Config.SampleRateHertz)
	assert.Equal(t, "hi-IN", got.Config.LanguageCode)
	require.Len(t, got.Config.SpeechContexts, 1)
	assert.Contains(t, got.Config.SpeechContexts[0].Phrases, "सब्सिडी")
	assert.Contains(t, got.Config.SpeechContexts[0].Phrases, "subsidy")
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio.Data), got.Audio.Content)
}

func TestSpeechToText_ZeroResultsIsEmptyString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	text, err := c.SpeechToText(context.Background(), message.AudioPayload{Data: []byte("x")}, "en")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestSpeechToText_NonSuccessIsSpeechError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Requests from this API key are blocked."}}`))
	})

	_, err := c.SpeechToText(context.Background(), message.AudioPayload{Data: []byte("x")}, "pa")
	var sErr *speech.Error
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusForbidden, sErr.StatusCode)
	assert.Equal(t, speech.OpSpeechToText, sErr.Op)
	assert.Equal(t, "Requests from this API key are blocked.", sErr.Message)
}

func TestSpeechToText_UnknownLanguageUsesDefaultLocale(t *testing.T) {
	var got recognizeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	_, err := c.SpeechToText(context.Background(), message.AudioPayload{Data: []byte("x"), ContentType: "audio/wav"}, "fr")
	require.NoError(t, err)
	assert.Equal(t, "hi-IN", got.Config.LanguageCode)
	assert.Equal(t, "LINEAR16", got.Config.Encoding)
	assert.Zero(t, got.Config.SampleRateHertz)
}

func TestEncodingFor(t *testing.T) {
	cases := map[string]struct {
		encoding string
		rate     int
	}{
		"audio/webm;codecs=opus": {"WEBM_OPUS", 48000},
		"audio/ogg; codecs=opus": {"OGG_OPUS", 48000},
		"audio/x-wav":            {"LINEAR16", 0},
		"audio/flac":             {"FLAC", 0},
		"":                       {"WEBM_OPUS", 48000},
	}
	for ct, want := range cases {
		enc, rate := encodingFor(ct)
		assert.Equal(t, want.encoding, enc, ct)
		assert.Equal(t, want.rate, rate, ct)
	}
}

func TestTextToSpeech_Success(t *testing.T) {
	var got synthesizeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text:synthesize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"audioContent":"SUQzBAAAAAAA"}`))
	})

	uri, err := c.TextToSpeech(context.Background(), "ನಮಸ್ಕಾರ", "kn")
	require.NoError(t, err)
	assert.Equal(t, "data:audio/mp3;base64,SUQzBAAAAAAA", uri)
	assert.Equal(t, "ನಮಸ್ಕಾರ", got.Input.Text)
	assert.Equal(t, "kn-IN", got.Voice.LanguageCode)
	assert.Equal(t, "NEUTRAL", got.Voice.SSMLGender)
	assert.Equal(t, "MP3", got.AudioConfig.AudioEncoding)
}

func TestTextToSpeech_NonSuccessIsSpeechError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	uri, err := c.TextToSpeech(context.Background(), "hello", "en")
	assert.Empty(t, uri)
	var sErr *speech.Error
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusInternalServerError, sErr.StatusCode)
	assert.Equal(t, "Internal Server Error", sErr.Message)
}

func TestTextToSpeech_EmptyAudioIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"audioContent":""}`))
	})

	_, err := c.TextToSpeech(context.Background(), "hello", "en")
	var sErr *speech.Error
	assert.True(t, errors.As(err, &sErr))
}
