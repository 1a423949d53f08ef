// Package http implements the HTTP/WebSocket transport for pragati.
//
// This transport exposes the REST API under /v1, a WebSocket endpoint for
// chat and streamed voice turns, and the Swagger UI. It is best suited for
// the web and mobile clients farmers use.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/transport"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// maxAudioBytes bounds raw and base64-decoded audio uploads.
const maxAudioBytes = 25 << 20

// Transport implements transport.Transport over HTTP and WebSocket.
type Transport struct {
	cfg    config.HTTPConfig
	server *http.Server
}

// New creates a new HTTP transport.
func New(cfg config.HTTPConfig) *Transport {
	return &Transport{cfg: cfg}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Handler builds the routed handler serving svc.
func Handler(cfg config.HTTPConfig, svc transport.Service) http.Handler {
	h := &handlers{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(rateLimit(cfg.RateLimit, cfg.RateBurst))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", h.chat)
		r.Post("/voice", h.voice)

		r.Route("/speech", func(r chi.Router) {
			r.Post("/transcribe", h.transcribe)
			r.Post("/synthesize", h.synthesize)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Get("/crops", h.crops)
			r.Post("/calculate", h.calculate)
			r.Post("/loans", h.loans)
			r.Post("/subsidies", h.subsidies)
			r.Post("/advice", h.advice)
		})

		r.Route("/schemes", func(r chi.Router) {
			r.Post("/search", h.searchSchemes)
			r.Post("/roadmap", h.roadmap)
		})

		r.Get("/ws", h.serveWS)
	})

	// Swagger UI for the generated OpenAPI docs.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// Listen starts the HTTP server and routes incoming requests to svc.
func (t *Transport) Listen(ctx context.Context, svc transport.Service) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.cfg.Port),
		Handler:           Handler(t.cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.cfg.Port, "rate_limit", t.cfg.RateLimit)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

// originChecker allows every origin when none are configured.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}
