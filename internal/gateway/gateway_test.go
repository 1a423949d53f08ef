package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joyal-jij0/pragati/internal/fallback"
	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/provider"
	"github.com/joyal-jij0/pragati/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeProvider struct {
	reply string
	err   error
	got   []message.Message
}

func (f *fakeProvider) Name() string { return "fake-chat" }

func (f *fakeProvider) Reply(_ context.Context, msgs []message.Message) (string, error) {
	f.got = msgs
	return f.reply, f.err
}

type fakeRecognizer struct {
	transcript string
	err        error
	gotLang    string
}

func (f *fakeRecognizer) Name() string { return "fake-stt" }

func (f *fakeRecognizer) SpeechToText(_ context.Context, _ message.AudioPayload, lang string) (string, error) {
	f.gotLang = lang
	return f.transcript, f.err
}

type fakeSynthesizer struct {
	uri     string
	err     error
	gotText string
	gotLang string
}

func (f *fakeSynthesizer) Name() string { return "fake-tts" }

func (f *fakeSynthesizer) TextToSpeech(_ context.Context, text, lang string) (string, error) {
	f.gotText, f.gotLang = text, lang
	return f.uri, f.err
}

var audio = message.AudioPayload{Data: []byte{1, 2, 3}, ContentType: "audio/webm"}

// --- chat ---

func TestChat_ProviderReplyVerbatim(t *testing.T) {
	p := &fakeProvider{reply: "  **गेहूं** बोएं  "}
	g := New(WithProvider(p))

	res := g.Chat(context.Background(), message.ChatRequest{Text: "क्या बोऊं? [LANG:hi]"})
	assert.Equal(t, "  **गेहूं** बोएं  ", res.Reply)
	assert.Equal(t, "hi", res.Language)
	assert.Equal(t, message.SourceProvider, res.Source)

	require.Len(t, p.got, 1)
	assert.Equal(t, message.RoleUser, p.got[0].Role)
	assert.Equal(t, "क्या बोऊं? [LANG:hi]", p.got[0].Content.Body())
}

func TestChat_LanguageFieldAddsDirective(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	g := New(WithProvider(p))

	res := g.Chat(context.Background(), message.ChatRequest{Text: "market price", Language: "en"})
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, "market price [LANG:en]", p.got[0].Content.Body())
}

func TestChat_DirectiveWinsOverLanguageField(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	g := New(WithProvider(p))

	res := g.Chat(context.Background(), message.ChatRequest{Text: "[LANG:ta] vanakkam", Language: "en"})
	assert.Equal(t, "ta", res.Language)
	assert.Equal(t, "[LANG:ta] vanakkam", p.got[0].Content.Body())
}

func TestChat_HistoryIsNotMutated(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	g := New(WithProvider(p))

	history := make([]message.Message, 1, 4)
	history[0] = message.Message{Role: message.RoleAssistant, Content: message.Text("नमस्ते")}

	g.Chat(context.Background(), message.ChatRequest{Text: "hello", History: history})
	require.Len(t, p.got, 2)
	assert.Len(t, history, 1)
	// Spare capacity in the caller's slice must not be written.
	assert.Zero(t, history[:2][1])
}

func TestChat_FirstImageOnly(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	g := New(WithProvider(p))

	g.Chat(context.Background(), message.ChatRequest{
		Text:   "what is this",
		Images: []string{"data:image/png;base64,AAA", "data:image/png;base64,BBB"},
	})
	img, ok := p.got[0].Content.(message.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAA", img.ImageURL)
}

func TestChat_ProviderFailureFallsBack(t *testing.T) {
	p := &fakeProvider{err: &provider.Error{Provider: "groq", StatusCode: 429, Message: "rate limited"}}
	g := New(WithProvider(p))

	res := g.Chat(context.Background(), message.ChatRequest{Text: "[LANG:hi] पत्तियों पर पीले धब्बे हैं"})
	assert.Equal(t, message.SourceFallback, res.Source)
	assert.Equal(t, "hi", res.Language)
	assert.Equal(t, fallback.Reply("पत्तियों पर पीले धब्बे हैं", "hi", false), res.Reply)
	assert.NotEmpty(t, res.Reply)
}

func TestChat_LanguageFromHistoryDrivesFallback(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	g := New(WithProvider(p))

	history := []message.Message{
		{Role: message.RoleUser, Content: message.Text("[LANG:ta] hello")},
		{Role: message.RoleAssistant, Content: message.Text("வணக்கம்")},
	}
	res := g.Chat(context.Background(), message.ChatRequest{Text: "what now?", History: history})
	assert.Equal(t, "ta", res.Language)
	assert.Equal(t, message.SourceFallback, res.Source)
	assert.Equal(t, fallback.Reply("what now?", "ta", false), res.Reply)
	assert.NotEqual(t, fallback.Reply("what now?", "hi", false), res.Reply)
}

func TestChat_NewDirectiveOverridesHistory(t *testing.T) {
	g := New()
	history := []message.Message{{Role: message.RoleUser, Content: message.Text("[LANG:ta] hello")}}

	res := g.Chat(context.Background(), message.ChatRequest{Text: "mandi price? [LANG:en]", History: history})
	assert.Equal(t, "en", res.Language)
}

func TestChat_UnconfiguredUsesFallback(t *testing.T) {
	g := New()

	res := g.Chat(context.Background(), message.ChatRequest{Text: "look at my leaf", Language: "en", Images: []string{"x"}})
	assert.Equal(t, message.SourceFallback, res.Source)
	assert.Equal(t, fallback.Reply("look at my leaf", "en", true), res.Reply)
}

// --- recommendations ---

type fakeRecommender struct{ err error }

func (f *fakeRecommender) Name() string { return "fake-rec" }

func (f *fakeRecommender) Loans(context.Context, finance.CropResult, finance.FarmerProfile) ([]finance.Loan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []finance.Loan{{Name: "Remote Loan"}}, nil
}

func (f *fakeRecommender) LoansForProfile(context.Context, finance.FarmerProfile) ([]finance.Loan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []finance.Loan{{Name: "Remote Profile Loan"}}, nil
}

func (f *fakeRecommender) Subsidies(context.Context, finance.CropResult, finance.FarmerProfile) ([]finance.Subsidy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []finance.Subsidy{{Name: "Remote Subsidy"}}, nil
}

func (f *fakeRecommender) Advice(context.Context, finance.CropResult) (*finance.FinancialAdvice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &finance.FinancialAdvice{Summary: "remote"}, nil
}

func (f *fakeRecommender) Schemes(context.Context, string) ([]finance.Scheme, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []finance.Scheme{{ID: "remote"}}, nil
}

func (f *fakeRecommender) Roadmap(context.Context, finance.Scheme, string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"1. remote step"}, nil
}

func wheat(t *testing.T) finance.CropResult {
	t.Helper()
	res, err := finance.Calculate(finance.CalculationRequest{CropID: "wheat", LandSize: 2, InterestRate: 7, WeatherCondition: finance.WeatherNormal})
	require.NoError(t, err)
	return *res
}

func TestRecommendations_Provider(t *testing.T) {
	g := New(WithRecommender(&fakeRecommender{}))
	ctx := context.Background()
	crop := wheat(t)

	loans := g.Loans(ctx, crop, finance.FarmerProfile{})
	assert.Equal(t, message.SourceProvider, loans.Source)
	assert.Equal(t, "Remote Loan", loans.Loans[0].Name)

	assert.Equal(t, "remote", g.Advice(ctx, crop).Advice.Summary)
	assert.Equal(t, "remote", g.Schemes(ctx, "").Schemes[0].ID)

	rm := g.Roadmap(ctx, finance.Scheme{ID: "pm-kisan"}, "xx")
	assert.Equal(t, message.SourceProvider, rm.Source)
	assert.Equal(t, "hi", rm.Language)
}

func TestRecommendations_FailureFallsBack(t *testing.T) {
	g := New(WithRecommender(&fakeRecommender{err: errors.New("boom")}))
	ctx := context.Background()
	crop := wheat(t)
	profile := finance.FarmerProfile{State: "Punjab", LandHolding: 3}

	loans := g.Loans(ctx, crop, profile)
	assert.Equal(t, message.SourceFallback, loans.Source)
	assert.Equal(t, fallback.Loans(crop), loans.Loans)

	byProfile := g.LoansForProfile(ctx, profile)
	assert.Equal(t, fallback.LoansForProfile(profile), byProfile.Loans)

	subs := g.Subsidies(ctx, crop, profile)
	assert.Equal(t, message.SourceFallback, subs.Source)
	assert.Equal(t, fallback.Subsidies(crop), subs.Subsidies)

	assert.Equal(t, fallback.Advice(crop), g.Advice(ctx, crop).Advice)
	assert.Equal(t, fallback.Schemes(), g.Schemes(ctx, "small farmer").Schemes)

	scheme := fallback.Schemes()[0]
	rm := g.Roadmap(ctx, scheme, "pa")
	assert.Equal(t, message.SourceFallback, rm.Source)
	assert.Equal(t, fallback.Roadmap(scheme, "pa"), rm.Steps)
}

func TestRecommendations_Unconfigured(t *testing.T) {
	g := New()
	crop := wheat(t)
	assert.Equal(t, message.SourceFallback, g.Loans(context.Background(), crop, finance.FarmerProfile{}).Source)
	assert.Equal(t, message.SourceFallback, g.Advice(context.Background(), crop).Source)
}

// --- speech ---

func TestSpeech_UnconfiguredIsUnavailable(t *testing.T) {
	g := New()
	_, err := g.SpeechToText(context.Background(), audio, "hi")
	assert.ErrorIs(t, err, speech.ErrUnavailable)
	_, err = g.TextToSpeech(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, speech.ErrUnavailable)
}

func TestSpeechToText_EmptyAudio(t *testing.T) {
	g := New(WithRecognizer(&fakeRecognizer{}))
	_, err := g.SpeechToText(context.Background(), message.AudioPayload{}, "hi")
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestSpeechToText_ErrorsReturnedUntouched(t *testing.T) {
	sErr := &speech.Error{Op: speech.OpSpeechToText, Backend: "google", StatusCode: 403, Message: "denied"}
	g := New(WithRecognizer(&fakeRecognizer{err: sErr}))
	_, err := g.SpeechToText(context.Background(), audio, "hi")
	assert.Same(t, sErr, err)
}

// --- voice turns ---

func TestConverse_FullPipeline(t *testing.T) {
	rec := &fakeRecognizer{transcript: "गेहूं का भाव"}
	p := &fakeProvider{reply: "भाव ₹2,200 है"}
	tts := &fakeSynthesizer{uri: "data:audio/mp3;base64,AAAA"}
	g := New(WithRecognizer(rec), WithProvider(p), WithSynthesizer(tts))

	res, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "गेहूं का भाव", res.Transcript)
	assert.Equal(t, "भाव ₹2,200 है", res.Reply)
	assert.Equal(t, "data:audio/mp3;base64,AAAA", res.ReplyAudio)
	assert.Equal(t, message.SourceProvider, res.Source)
	assert.Empty(t, res.AudioError)
	assert.Equal(t, "hi", rec.gotLang)
	assert.Equal(t, "भाव ₹2,200 है", tts.gotText)
	assert.Equal(t, "hi", tts.gotLang)
}

func TestConverse_TextModeSkipsSynthesis(t *testing.T) {
	tts := &fakeSynthesizer{uri: "data:audio/mp3;base64,AAAA"}
	g := New(WithRecognizer(&fakeRecognizer{transcript: "hello"}), WithProvider(&fakeProvider{reply: "hi"}), WithSynthesizer(tts))

	res, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "en", ResponseMode: message.ResponseModeText})
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Reply)
	assert.Empty(t, res.ReplyAudio)
	assert.Empty(t, tts.gotText)
}

func TestConverse_AudioModeOmitsText(t *testing.T) {
	g := New(
		WithRecognizer(&fakeRecognizer{transcript: "hello"}),
		WithProvider(&fakeProvider{reply: "hi"}),
		WithSynthesizer(&fakeSynthesizer{uri: "data:audio/wav;base64,AA"}),
	)
	res, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "en", ResponseMode: message.ResponseModeAudio})
	require.NoError(t, err)
	assert.Empty(t, res.Reply)
	assert.Equal(t, "data:audio/wav;base64,AA", res.ReplyAudio)
}

func TestConverse_SynthesisFailureKeepsText(t *testing.T) {
	g := New(
		WithRecognizer(&fakeRecognizer{transcript: "hello"}),
		WithProvider(&fakeProvider{reply: "hi there"}),
		WithSynthesizer(&fakeSynthesizer{err: errors.New("tts down")}),
	)
	res, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "en", ResponseMode: message.ResponseModeAudio})
	require.NoError(t, err)
	assert.Equal(t, "hi there", res.Reply)
	assert.Empty(t, res.ReplyAudio)
	assert.Equal(t, "tts down", res.AudioError)
}

func TestConverse_DefaultModeWithoutSynthesizerIsText(t *testing.T) {
	g := New(WithRecognizer(&fakeRecognizer{transcript: "hello"}), WithProvider(&fakeProvider{reply: "hi"}))
	res, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Reply)
	assert.Empty(t, res.AudioError)
}

func TestConverse_TranscriptionFailure(t *testing.T) {
	g := New(WithRecognizer(&fakeRecognizer{err: errors.New("stt down")}))
	_, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "hi"})
	assert.ErrorContains(t, err, "stt down")
}

func TestConverse_NothingRecognised(t *testing.T) {
	p := &fakeProvider{reply: "unused"}
	g := New(WithRecognizer(&fakeRecognizer{}), WithProvider(p))
	res, err := g.Converse(context.Background(), message.VoiceRequest{Audio: audio, Language: "ta"})
	require.NoError(t, err)
	assert.Empty(t, res.Transcript)
	assert.Empty(t, res.Reply)
	assert.Nil(t, p.got)
}

// --- misc ---

func TestBackends(t *testing.T) {
	assert.Equal(t, Backends{Chat: "fallback", Recommend: "fallback", SpeechToText: "unavailable", TextToSpeech: "unavailable"}, New().Backends())

	g := New(WithProvider(&fakeProvider{}), WithRecommender(&fakeRecommender{}), WithRecognizer(&fakeRecognizer{}), WithSynthesizer(&fakeSynthesizer{}))
	assert.Equal(t, Backends{Chat: "fake-chat", Recommend: "fake-rec", SpeechToText: "fake-stt", TextToSpeech: "fake-tts"}, g.Backends())
}

func TestUserMessageTimestamp(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	g := New(WithProvider(p))
	fixed := time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	g.Chat(context.Background(), message.ChatRequest{Text: "hello"})
	assert.Equal(t, fixed, p.got[0].Timestamp)
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
	assert.NotNil(t, Logger(ctx))
}
