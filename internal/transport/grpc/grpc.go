// Package grpc implements the gRPC transport for pragati.
//
// This transport exposes the pragati.advisory.v1.Advisory service with a JSON
// codec and a hand-written service descriptor, so callers share the HTTP API's
// message shapes without generated stubs. The standard gRPC health service is
// registered alongside it.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/speech"
	"github.com/joyal-jij0/pragati/internal/transport"
)

// maxMessageBytes admits 25 MB of audio after base64 and JSON framing.
const maxMessageBytes = 40 << 20

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port   int
	health *health.Server

	mu     sync.Mutex
	server *grpc.Server
}

// New creates a new gRPC transport.
func New(cfg config.GRPCConfig) *Transport {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Transport{port: cfg.Port, health: h}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// SetServing flips the health service between SERVING and NOT_SERVING.
func (t *Transport) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	t.health.SetServingStatus("", st)
	t.health.SetServingStatus(ServiceName, st)
}

// Listen starts the gRPC server and routes incoming requests to svc.
func (t *Transport) Listen(ctx context.Context, svc transport.Service) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	gateway.Logger(ctx).Info("grpc transport listening", "port", t.port)
	return t.Serve(ctx, lis, svc)
}

// Serve runs the gRPC server on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, svc transport.Service) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logRequests),
		grpc.MaxRecvMsgSize(maxMessageBytes),
		grpc.MaxSendMsgSize(maxMessageBytes),
	)
	RegisterAdvisoryServer(srv, &server{svc: svc})
	healthpb.RegisterHealthServer(srv, t.health)

	t.mu.Lock()
	t.server = srv
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		gateway.Logger(ctx).Info("grpc transport shutting down")
		srv.GracefulStop()
	}()

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.health.Shutdown()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.server != nil {
		t.server.GracefulStop()
	}
	return nil
}

// logRequests tags each call with a request ID and logs its outcome.
func logRequests(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	id := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-request-id"); len(v) > 0 {
			id = v[0]
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	ctx = gateway.WithRequestID(ctx, id)
	_ = grpc.SetHeader(ctx, metadata.Pairs("x-request-id", id))

	resp, err := handler(ctx, req)
	gateway.Logger(ctx).Info("grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds())
	return resp, err
}

// server adapts transport.Service to AdvisoryServer.
type server struct {
	svc transport.Service
}

// speechStatus maps speech failures onto gRPC codes.
func speechStatus(err error) error {
	switch {
	case errors.Is(err, gateway.ErrEmptyAudio):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, speech.ErrUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		var sErr *speech.Error
		if errors.As(err, &sErr) {
			return status.Error(codes.Unavailable, err.Error())
		}
		return status.Error(codes.Internal, err.Error())
	}
}

func (s *server) Chat(ctx context.Context, req *message.ChatRequest) (*message.ChatResult, error) {
	if strings.TrimSpace(req.Text) == "" && len(req.Images) == 0 {
		return nil, status.Error(codes.InvalidArgument, "text or images required")
	}
	return s.svc.Chat(ctx, *req), nil
}

func (s *server) Converse(ctx context.Context, req *message.VoiceRequest) (*message.VoiceResult, error) {
	res, err := s.svc.Converse(ctx, *req)
	if err != nil {
		return nil, speechStatus(err)
	}
	return res, nil
}

func (s *server) Calculate(_ context.Context, req *finance.CalculationRequest) (*finance.CropResult, error) {
	res, err := s.svc.Calculate(*req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return res, nil
}

func (s *server) Loans(ctx context.Context, req *RecommendRequest) (*gateway.LoansResult, error) {
	if req.Crop == nil {
		return s.svc.LoansForProfile(ctx, req.Profile), nil
	}
	return s.svc.Loans(ctx, *req.Crop, req.Profile), nil
}

func (s *server) Subsidies(ctx context.Context, req *RecommendRequest) (*gateway.SubsidiesResult, error) {
	if req.Crop == nil {
		return nil, status.Error(codes.InvalidArgument, "crop required")
	}
	return s.svc.Subsidies(ctx, *req.Crop, req.Profile), nil
}

func (s *server) Advice(ctx context.Context, req *RecommendRequest) (*gateway.AdviceResult, error) {
	if req.Crop == nil {
		return nil, status.Error(codes.InvalidArgument, "crop required")
	}
	return s.svc.Advice(ctx, *req.Crop), nil
}

func (s *server) SearchSchemes(ctx context.Context, req *SchemeSearchRequest) (*gateway.SchemesResult, error) {
	return s.svc.Schemes(ctx, req.Criteria), nil
}

func (s *server) Roadmap(ctx context.Context, req *RoadmapRequest) (*gateway.RoadmapResult, error) {
	if req.Scheme.ID == "" && req.Scheme.Title == "" {
		return nil, status.Error(codes.InvalidArgument, "scheme required")
	}
	return s.svc.Roadmap(ctx, req.Scheme, req.Language), nil
}

func (s *server) SpeechToText(ctx context.Context, req *SpeechToTextRequest) (*SpeechToTextResponse, error) {
	text, err := s.svc.SpeechToText(ctx, req.Audio, req.Language)
	if err != nil {
		return nil, speechStatus(err)
	}
	return &SpeechToTextResponse{Transcript: text, Language: language.Normalize(req.Language)}, nil
}

func (s *server) TextToSpeech(ctx context.Context, req *TextToSpeechRequest) (*TextToSpeechResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, status.Error(codes.InvalidArgument, "text required")
	}
	uri, err := s.svc.TextToSpeech(ctx, req.Text, req.Language)
	if err != nil {
		return nil, speechStatus(err)
	}
	return &TextToSpeechResponse{Audio: uri, Language: language.Normalize(req.Language)}, nil
}
