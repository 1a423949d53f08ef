// Package health provides the liveness and readiness endpoints.
//
// Docker and Kubernetes use these endpoints to monitor the daemon. Both
// report which backend serves each advisory path, so an operator can see at a
// glance whether chat is answered by the provider or by fallback replies.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joyal-jij0/pragati/internal/gateway"
)

// Report is the body of /healthz and /readyz.
type Report struct {
	Status   string           `json:"status"`
	Backends gateway.Backends `json:"backends"`
}

// Server is a lightweight HTTP server that exposes /healthz and /readyz.
type Server struct {
	port     int
	backends func() gateway.Backends
	ready    atomic.Bool
	server   *http.Server

	mu      sync.Mutex
	onReady []func(bool)
}

// New creates a new health check server. backends reports the active backends.
func New(port int, backends func() gateway.Backends) *Server {
	return &Server{port: port, backends: backends}
}

// OnReady registers fn to be called whenever readiness changes, e.g. to
// mirror it into the gRPC health service.
func (s *Server) OnReady(fn func(ready bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = append(s.onReady, fn)
}

// SetReady marks the daemon as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
	s.mu.Lock()
	hooks := append([]func(bool){}, s.onReady...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ready)
	}
}

// Handler returns the health routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.report)
	mux.HandleFunc("GET /readyz", s.report)
	return mux
}

func (s *Server) report(w http.ResponseWriter, _ *http.Request) {
	rep := Report{Status: "ok", Backends: s.backends()}
	code := http.StatusOK
	if !s.ready.Load() {
		rep.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(rep)
}

// ListenAndServe starts the health check HTTP server.
// It blocks until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("health server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}
