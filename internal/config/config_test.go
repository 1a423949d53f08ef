package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pragati.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HealthPort)
	assert.Equal(t, 8080, cfg.Transports.HTTP.Port)
	assert.Equal(t, 50051, cfg.Transports.GRPC.Port)
	assert.Equal(t, "llama3-70b-8192", cfg.Providers.Groq.Model)
	assert.Equal(t, "gemini-1.5-pro", cfg.Providers.Gemini.Model)
	assert.Equal(t, "google", cfg.TTS.Backend)
	assert.Equal(t, "google", cfg.STT.Backend)
	assert.Equal(t, "openai", cfg.STT.Whisper.Type)
	assert.Equal(t, "whisper-large-v3", cfg.STT.Whisper.Model)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Providers.Groq.Configured())
	assert.False(t, cfg.Providers.Gemini.Configured())
	assert.False(t, cfg.Providers.GoogleSpeech.Configured())
}

func TestLoad_ConventionalKeyVariables(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GEMINI_API_KEY", "gem_test")
	t.Setenv("GOOGLE_API_KEY", "goog_test")

	cfg, err := Load(writeConfig(t, "server:\n  health_port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.Providers.Groq.APIKey)
	assert.Equal(t, "gem_test", cfg.Providers.Gemini.APIKey)
	assert.Equal(t, "goog_test", cfg.Providers.GoogleSpeech.APIKey)
	assert.Equal(t, 9000, cfg.Server.HealthPort)
	// Whisper borrows the Groq key when it has none of its own.
	assert.Equal(t, "gsk_test", cfg.STT.Whisper.APIKey)
}

func TestLoad_WhisperSettings(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	cfg, err := Load(writeConfig(t, "stt:\n  backend: whisper\n  whisper:\n    type: asr\n    endpoint: http://localhost:9000/asr\n    vad_filter: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "whisper", cfg.STT.Backend)
	assert.Equal(t, "asr", cfg.STT.Whisper.Type)
	assert.True(t, cfg.STT.Whisper.VADFilter)
	assert.True(t, cfg.STT.Whisper.Configured())
	assert.Empty(t, cfg.STT.Whisper.APIKey)
}

func TestLoad_RejectsUnknownSTTSettings(t *testing.T) {
	_, err := Load(writeConfig(t, "stt:\n  backend: vosk\n"))
	assert.ErrorContains(t, err, "unknown stt backend")

	_, err = Load(writeConfig(t, "stt:\n  whisper:\n    type: grpc\n"))
	assert.ErrorContains(t, err, "unknown whisper type")
}

func TestLoad_EnvReferenceInFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("MY_GROQ_SECRET", "from-ref")

	cfg, err := Load(writeConfig(t, "providers:\n  groq:\n    api_key: ${MY_GROQ_SECRET}\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-ref", cfg.Providers.Groq.APIKey)
	assert.True(t, cfg.Providers.Groq.Configured())
}

func TestLoad_RejectsUnknownTTSBackend(t *testing.T) {
	_, err := Load(writeConfig(t, "tts:\n  backend: espeak\n"))
	assert.Error(t, err)
}

func TestLoad_RejectsNoTransports(t *testing.T) {
	_, err := Load(writeConfig(t, "transports:\n  http:\n    enabled: false\n  grpc:\n    enabled: false\n"))
	assert.Error(t, err)
}

func TestKeyPresent(t *testing.T) {
	assert.True(t, keyPresent("abc"))
	assert.False(t, keyPresent(""))
	assert.False(t, keyPresent("   "))
	assert.False(t, keyPresent("YOUR_GEMINI_API_KEY"))
	assert.False(t, keyPresent("${UNSET_VAR}"))
}
