package http

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/speech"
)

func dialWS(t *testing.T, gw *gateway.Gateway) *websocket.Conn {
	t.Helper()
	srv := serve(t, config.HTTPConfig{}, gw)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ready serverFrame
	require.NoError(t, conn.ReadJSON(&ready))
	require.Equal(t, frameReady, ready.Type)
	require.NotEmpty(t, ready.SessionID)
	return conn
}

func TestWebSocket_Chat(t *testing.T) {
	conn := dialWS(t, gateway.New())

	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameChat, Text: "any scheme or subsidy for me?", Language: "en"}))

	var reply serverFrame
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, frameReply, reply.Type)
	assert.Equal(t, "en", reply.Language)
	assert.Equal(t, message.SourceFallback, reply.Source)
	assert.NotEmpty(t, reply.Reply)
}

func TestWebSocket_VoiceSession(t *testing.T) {
	rec := &stubRecognizer{transcript: "weather tomorrow"}
	conn := dialWS(t, gateway.New(gateway.WithRecognizer(rec)))

	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameVoiceStart, Language: "en"}))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("chunk-1|")))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("chunk-2")))
	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameVoiceStop}))

	var reply serverFrame
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, frameReply, reply.Type, reply.Error)
	assert.Equal(t, "weather tomorrow", reply.Transcript)
	assert.NotEmpty(t, reply.Reply)

	assert.Equal(t, "chunk-1|chunk-2", string(rec.got.Data))
	assert.Equal(t, speech.DefaultCodec, rec.got.ContentType)
	assert.Equal(t, "en", rec.gotLang)
}

func TestWebSocket_ProtocolErrors(t *testing.T) {
	conn := dialWS(t, gateway.New())

	expectError := func(contains string) {
		t.Helper()
		var f serverFrame
		require.NoError(t, conn.ReadJSON(&f))
		assert.Equal(t, frameError, f.Type)
		assert.Contains(t, f.Error, contains)
	}

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{1}))
	expectError("outside a voice session")

	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameVoiceStop}))
	expectError("not recording")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{bad")))
	expectError("invalid frame")

	require.NoError(t, conn.WriteJSON(clientFrame{Type: "dance"}))
	expectError("unknown frame type")

	// Voice without a recognizer surfaces the speech error.
	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameVoiceStart}))
	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameVoiceStart}))
	expectError("already recording")
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2}))
	require.NoError(t, conn.WriteJSON(clientFrame{Type: frameVoiceStop}))
	expectError("not configured")
}
