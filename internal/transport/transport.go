// Package transport defines the interface for pluggable caller-facing transports.
//
// Each transport (HTTP/WebSocket, gRPC) implements this interface and serves
// the advisory Service. The service doesn't care how requests arrive; it only
// works with decoded request values.
package transport

import (
	"context"

	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/message"
)

// Service is the advisory surface a transport exposes. *gateway.Gateway
// implements it.
type Service interface {
	Chat(ctx context.Context, req message.ChatRequest) *message.ChatResult
	Converse(ctx context.Context, req message.VoiceRequest) (*message.VoiceResult, error)
	SpeechToText(ctx context.Context, audio message.AudioPayload, lang string) (string, error)
	TextToSpeech(ctx context.Context, text, lang string) (string, error)

	Calculate(req finance.CalculationRequest) (*finance.CropResult, error)
	Crops() []finance.Crop

	Loans(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) *gateway.LoansResult
	LoansForProfile(ctx context.Context, profile finance.FarmerProfile) *gateway.LoansResult
	Subsidies(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) *gateway.SubsidiesResult
	Advice(ctx context.Context, crop finance.CropResult) *gateway.AdviceResult
	Schemes(ctx context.Context, criteria string) *gateway.SchemesResult
	Roadmap(ctx context.Context, scheme finance.Scheme, lang string) *gateway.RoadmapResult
}

var _ Service = (*gateway.Gateway)(nil)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http").
	Name() string

	// Listen starts accepting requests and serves them from svc.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, svc Service) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
