// Pragati is a conversational advisory gateway for Indian farmers. It answers
// farming questions in the farmer's language, recommends loans, subsidies and
// government schemes, and bridges speech to text and back.
//
// Usage:
//
//	pragati [flags]
//	pragati --config /path/to/pragati.yaml
//
// @title       Pragati Advisory Gateway API
// @version     1.0
// @description Conversational and financial advisory API for Indian farmers.
// @BasePath    /
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/joyal-jij0/pragati/docs"
	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/fallback"
	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/health"
	"github.com/joyal-jij0/pragati/internal/provider/groq"
	"github.com/joyal-jij0/pragati/internal/recommend/gemini"
	"github.com/joyal-jij0/pragati/internal/speech/google"
	"github.com/joyal-jij0/pragati/internal/speech/piper"
	"github.com/joyal-jij0/pragati/internal/speech/whisper"
	"github.com/joyal-jij0/pragati/internal/transport"
	grpctransport "github.com/joyal-jij0/pragati/internal/transport/grpc"
	httptransport "github.com/joyal-jij0/pragati/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/pragati.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pragati %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("pragati starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gw := gateway.New(backendOptions(cfg)...)
	if !fallback.Covers() {
		slog.Warn("fallback replies do not cover every supported language")
	}

	// Initialize enabled transports.
	var transports []transport.Transport
	var grpcT *grpctransport.Transport

	if cfg.Transports.GRPC.Enabled {
		grpcT = grpctransport.New(cfg.Transports.GRPC)
		transports = append(transports, grpcT)
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP))
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort, gw.Backends)
	if grpcT != nil {
		healthServer.OnReady(grpcT.SetServing)
	}
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, gw); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	b := gw.Backends()
	slog.Info("pragati ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort,
		"chat", b.Chat,
		"recommend", b.Recommend,
		"speech_to_text", b.SpeechToText,
		"text_to_speech", b.TextToSpeech)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")
	healthServer.SetReady(false)

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("pragati stopped")
}

// backendOptions builds only the adapters whose credentials are configured.
// Missing chat or recommendation keys select fallback output; missing speech
// keys leave speech unavailable.
func backendOptions(cfg *config.Config) []gateway.Option {
	var opts []gateway.Option

	if cfg.Providers.Groq.Configured() {
		opts = append(opts, gateway.WithProvider(groq.New(cfg.Providers.Groq)))
		slog.Info("using Groq chat provider", "model", cfg.Providers.Groq.Model)
	} else {
		slog.Warn("GROQ_API_KEY not set, chat will use fallback replies")
	}

	if cfg.Providers.Gemini.Configured() {
		opts = append(opts, gateway.WithRecommender(gemini.New(cfg.Providers.Gemini)))
		slog.Info("using Gemini recommender", "model", cfg.Providers.Gemini.Model)
	} else {
		slog.Warn("GEMINI_API_KEY not set, recommendations will use fallback data")
	}

	var speechClient *google.Client
	if cfg.Providers.GoogleSpeech.Configured() {
		speechClient = google.New(cfg.Providers.GoogleSpeech)
	}

	switch cfg.STT.Backend {
	case "whisper":
		if cfg.STT.Whisper.Configured() {
			opts = append(opts, gateway.WithRecognizer(whisper.New(cfg.STT.Whisper)))
			slog.Info("using Whisper speech-to-text", "type", cfg.STT.Whisper.Type, "endpoint", cfg.STT.Whisper.Endpoint)
		} else {
			slog.Warn("whisper endpoint not set, speech-to-text disabled")
		}
	case "google":
		if speechClient != nil {
			opts = append(opts, gateway.WithRecognizer(speechClient))
			slog.Info("using Google speech-to-text")
		} else {
			slog.Warn("GOOGLE_API_KEY not set, speech-to-text disabled")
		}
	}

	switch cfg.TTS.Backend {
	case "piper":
		opts = append(opts, gateway.WithSynthesizer(piper.New(cfg.TTS.Piper)))
		slog.Info("using Piper text-to-speech", "endpoint", cfg.TTS.Piper.Endpoint)
	case "google":
		if speechClient != nil {
			opts = append(opts, gateway.WithSynthesizer(speechClient))
			slog.Info("using Google text-to-speech")
		} else {
			slog.Warn("text-to-speech disabled, Google speech is not configured")
		}
	}

	return opts
}
