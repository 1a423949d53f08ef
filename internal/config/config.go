// Package config handles loading and validating the pragati configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the pragati daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	STT        STTConfig        `mapstructure:"stt"`
	TTS        TTSConfig        `mapstructure:"tts"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP/WebSocket transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`

	// RateLimit is the sustained requests/second across all clients; <= 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	// AllowedOrigins restricts WebSocket upgrades; empty allows all.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProvidersConfig holds the remote model and speech backends.
type ProvidersConfig struct {
	Groq         GroqConfig         `mapstructure:"groq"`
	Gemini       GeminiConfig       `mapstructure:"gemini"`
	GoogleSpeech GoogleSpeechConfig `mapstructure:"google_speech"`
}

// GroqConfig holds the conversational chat-completion settings.
type GroqConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Configured reports whether an API key is present.
func (c GroqConfig) Configured() bool { return keyPresent(c.APIKey) }

// GeminiConfig holds the structured-recommendation generate-content settings.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Configured reports whether an API key is present.
func (c GeminiConfig) Configured() bool { return keyPresent(c.APIKey) }

// GoogleSpeechConfig holds the Cloud Speech-to-Text / Text-to-Speech settings.
type GoogleSpeechConfig struct {
	APIKey string `mapstructure:"api_key"`
	STTURL string `mapstructure:"stt_url"`
	TTSURL string `mapstructure:"tts_url"`
}

// Configured reports whether an API key is present.
func (c GoogleSpeechConfig) Configured() bool { return keyPresent(c.APIKey) }

// STTConfig selects the speech-to-text backend.
type STTConfig struct {
	Backend string        `mapstructure:"backend"` // "google" or "whisper"
	Whisper WhisperConfig `mapstructure:"whisper"`
}

// WhisperConfig holds Whisper-compatible transcription settings.
type WhisperConfig struct {
	// Type is "openai" for OpenAI-compatible /audio/transcriptions servers
	// (Groq, whisper.cpp, faster-whisper) or "asr" for whisper-asr-webservice.
	Type string `mapstructure:"type"`

	// Endpoint is the API base URL for "openai" and the full /asr URL for "asr".
	Endpoint  string `mapstructure:"endpoint"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	VADFilter bool   `mapstructure:"vad_filter"`
}

// Configured reports whether an endpoint is set. Self-hosted servers need no key.
func (c WhisperConfig) Configured() bool { return strings.TrimSpace(c.Endpoint) != "" }

// TTSConfig selects the text-to-speech backend.
type TTSConfig struct {
	Backend string      `mapstructure:"backend"` // "google" or "piper"
	Piper   PiperConfig `mapstructure:"piper"`
}

// PiperConfig holds Piper TTS settings (Wyoming protocol).
//
// Endpoints maps canonical language codes to per-language Wyoming servers;
// Endpoint serves every language without its own entry.
type PiperConfig struct {
	Endpoint  string            `mapstructure:"endpoint"`
	Endpoints map[string]string `mapstructure:"endpoints"`
	Voices    map[string]string `mapstructure:"voices"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// keyPresent treats empty keys and "YOUR_..._API_KEY" placeholders as absent.
func keyPresent(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	if strings.HasPrefix(key, "YOUR_") && strings.HasSuffix(key, "_API_KEY") {
		return false
	}
	return !strings.HasPrefix(key, "${")
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./pragati.yaml, ./configs/pragati.yaml, /etc/pragati/pragati.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.http.rate_limit", 0)
	v.SetDefault("transports.http.rate_burst", 20)
	v.SetDefault("providers.groq.model", "llama3-70b-8192")
	v.SetDefault("providers.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("providers.gemini.model", "gemini-1.5-pro")
	v.SetDefault("providers.gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("providers.google_speech.stt_url", "https://speech.googleapis.com/v1/speech:recognize")
	v.SetDefault("providers.google_speech.tts_url", "https://texttospeech.googleapis.com/v1/text:synthesize")
	v.SetDefault("stt.backend", "google")
	v.SetDefault("stt.whisper.type", "openai")
	v.SetDefault("stt.whisper.endpoint", "https://api.groq.com/openai/v1")
	v.SetDefault("stt.whisper.model", "whisper-large-v3")
	v.SetDefault("tts.backend", "google")
	v.SetDefault("tts.piper.endpoint", "localhost:10200")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pragati")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/pragati")
	}

	// Environment variables: PRAGATI_SERVER_HEALTH_PORT, PRAGATI_PROVIDERS_GROQ_MODEL, etc.
	v.SetEnvPrefix("PRAGATI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional provider key variables are honoured as well.
	_ = v.BindEnv("providers.groq.api_key", "PRAGATI_PROVIDERS_GROQ_API_KEY", "GROQ_API_KEY")
	_ = v.BindEnv("providers.gemini.api_key", "PRAGATI_PROVIDERS_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("providers.google_speech.api_key", "PRAGATI_PROVIDERS_GOOGLE_SPEECH_API_KEY", "GOOGLE_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${GROQ_API_KEY}").
	cfg.Providers.Groq.APIKey = resolveEnvRef(cfg.Providers.Groq.APIKey)
	cfg.Providers.Gemini.APIKey = resolveEnvRef(cfg.Providers.Gemini.APIKey)
	cfg.Providers.GoogleSpeech.APIKey = resolveEnvRef(cfg.Providers.GoogleSpeech.APIKey)
	cfg.STT.Whisper.APIKey = resolveEnvRef(cfg.STT.Whisper.APIKey)

	// Groq serves Whisper on the same key as chat.
	if cfg.STT.Whisper.APIKey == "" {
		cfg.STT.Whisper.APIKey = cfg.Providers.Groq.APIKey
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.STT.Backend {
	case "google", "whisper":
	default:
		return fmt.Errorf("unknown stt backend %q", c.STT.Backend)
	}
	switch c.STT.Whisper.Type {
	case "openai", "asr":
	default:
		return fmt.Errorf("unknown whisper type %q", c.STT.Whisper.Type)
	}
	switch c.TTS.Backend {
	case "google", "piper":
	default:
		return fmt.Errorf("unknown tts backend %q", c.TTS.Backend)
	}
	if !c.Transports.HTTP.Enabled && !c.Transports.GRPC.Enabled {
		return fmt.Errorf("no transports enabled: enable at least one of http, grpc")
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
