package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/message"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "pragati.advisory.v1.Advisory"

// Request and response messages that have no domain type of their own.
type (
	RecommendRequest struct {
		Crop    *finance.CropResult   `json:"crop,omitempty"`
		Profile finance.FarmerProfile `json:"profile"`
	}

	SchemeSearchRequest struct {
		Criteria string `json:"criteria"`
	}

	RoadmapRequest struct {
		Scheme   finance.Scheme `json:"scheme"`
		Language string         `json:"language"`
	}

	SpeechToTextRequest struct {
		Audio    message.AudioPayload `json:"audio"`
		Language string               `json:"language"`
	}

	SpeechToTextResponse struct {
		Transcript string `json:"transcript"`
		Language   string `json:"language"`
	}

	TextToSpeechRequest struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}

	TextToSpeechResponse struct {
		Audio    string `json:"audio"`
		Language string `json:"language"`
	}
)

// AdvisoryServer is the server API for the Advisory service.
type AdvisoryServer interface {
	Chat(context.Context, *message.ChatRequest) (*message.ChatResult, error)
	Converse(context.Context, *message.VoiceRequest) (*message.VoiceResult, error)
	Calculate(context.Context, *finance.CalculationRequest) (*finance.CropResult, error)
	Loans(context.Context, *RecommendRequest) (*gateway.LoansResult, error)
	Subsidies(context.Context, *RecommendRequest) (*gateway.SubsidiesResult, error)
	Advice(context.Context, *RecommendRequest) (*gateway.AdviceResult, error)
	SearchSchemes(context.Context, *SchemeSearchRequest) (*gateway.SchemesResult, error)
	Roadmap(context.Context, *RoadmapRequest) (*gateway.RoadmapResult, error)
	SpeechToText(context.Context, *SpeechToTextRequest) (*SpeechToTextResponse, error)
	TextToSpeech(context.Context, *TextToSpeechRequest) (*TextToSpeechResponse, error)
}

// unary builds a MethodDesc that decodes Req and calls fn on the registered AdvisoryServer.
func unary[Req, Resp any](name string, fn func(AdvisoryServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(AdvisoryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(AdvisoryServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdvisoryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Chat", AdvisoryServer.Chat),
		unary("Converse", AdvisoryServer.Converse),
		unary("Calculate", AdvisoryServer.Calculate),
		unary("Loans", AdvisoryServer.Loans),
		unary("Subsidies", AdvisoryServer.Subsidies),
		unary("Advice", AdvisoryServer.Advice),
		unary("SearchSchemes", AdvisoryServer.SearchSchemes),
		unary("Roadmap", AdvisoryServer.Roadmap),
		unary("SpeechToText", AdvisoryServer.SpeechToText),
		unary("TextToSpeech", AdvisoryServer.TextToSpeech),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pragati/advisory/v1",
}

// RegisterAdvisoryServer registers srv on s.
func RegisterAdvisoryServer(s grpc.ServiceRegistrar, srv AdvisoryServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Client is a JSON-codec client for the Advisory service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Chat(ctx context.Context, in *message.ChatRequest, opts ...grpc.CallOption) (*message.ChatResult, error) {
	return invoke[message.ChatResult](ctx, c, "Chat", in, opts)
}

func (c *Client) Converse(ctx context.Context, in *message.VoiceRequest, opts ...grpc.CallOption) (*message.VoiceResult, error) {
	return invoke[message.VoiceResult](ctx, c, "Converse", in, opts)
}

func (c *Client) Calculate(ctx context.Context, in *finance.CalculationRequest, opts ...grpc.CallOption) (*finance.CropResult, error) {
	return invoke[finance.CropResult](ctx, c, "Calculate", in, opts)
}

func (c *Client) Loans(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*gateway.LoansResult, error) {
	return invoke[gateway.LoansResult](ctx, c, "Loans", in, opts)
}

func (c *Client) Subsidies(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*gateway.SubsidiesResult, error) {
	return invoke[gateway.SubsidiesResult](ctx, c, "Subsidies", in, opts)
}

func (c *Client) Advice(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*gateway.AdviceResult, error) {
	return invoke[gateway.AdviceResult](ctx, c, "Advice", in, opts)
}

func (c *Client) SearchSchemes(ctx context.Context, in *SchemeSearchRequest, opts ...grpc.CallOption) (*gateway.SchemesResult, error) {
	return invoke[gateway.SchemesResult](ctx, c, "SearchSchemes", in, opts)
}

func (c *Client) Roadmap(ctx context.Context, in *RoadmapRequest, opts ...grpc.CallOption) (*gateway.RoadmapResult, error) {
	return invoke[gateway.RoadmapResult](ctx, c, "Roadmap", in, opts)
}

func (c *Client) SpeechToText(ctx context.Context, in *SpeechToTextRequest, opts ...grpc.CallOption) (*SpeechToTextResponse, error) {
	return invoke[SpeechToTextResponse](ctx, c, "SpeechToText", in, opts)
}

func (c *Client) TextToSpeech(ctx context.Context, in *TextToSpeechRequest, opts ...grpc.CallOption) (*TextToSpeechResponse, error) {
	return invoke[TextToSpeechResponse](ctx, c, "TextToSpeech", in, opts)
}
