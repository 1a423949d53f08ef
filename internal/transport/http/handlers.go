package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/gateway"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/speech"
	"github.com/joyal-jij0/pragati/internal/transport"
)

const (
	headerLanguage     = "X-Pragati-Language"
	headerResponseMode = "X-Pragati-Response-Mode"

	// maxJSONBytes leaves room for base64-encoded audio plus history.
	maxJSONBytes = maxAudioBytes*4/3 + 1<<20
)

type handlers struct {
	svc      transport.Service
	upgrader websocket.Upgrader
}

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type transcribeRequest struct {
	Audio    message.AudioPayload `json:"audio"`
	Language string               `json:"language"`
}

type transcribeResponse struct {
	Transcript string `json:"transcript"`
	Language   string `json:"language"`
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type synthesizeResponse struct {
	// Audio is a ready-to-play data URI.
	Audio    string `json:"audio"`
	Language string `json:"language"`
}

type loansRequest struct {
	// Crop is optional; without it loans are recommended from the profile alone.
	Crop    *finance.CropResult   `json:"crop,omitempty"`
	Profile finance.FarmerProfile `json:"profile"`
}

type subsidiesRequest struct {
	Crop    *finance.CropResult   `json:"crop"`
	Profile finance.FarmerProfile `json:"profile"`
}

type adviceRequest struct {
	Crop *finance.CropResult `json:"crop"`
}

type schemeSearchRequest struct {
	Criteria string `json:"criteria"`
}

type roadmapRequest struct {
	Scheme   finance.Scheme `json:"scheme"`
	Language string         `json:"language"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: gateway.RequestID(r.Context())})
}

// statusFor maps speech errors onto HTTP statuses. Chat and recommendation
// paths never fail, so only speech and input errors reach here.
func statusFor(err error) int {
	var sErr *speech.Error
	switch {
	case errors.Is(err, speech.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, gateway.ErrEmptyAudio):
		return http.StatusBadRequest
	case errors.As(err, &sErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// decodeJSON reads a bounded JSON body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

// readAudio treats the body as raw audio tagged with its Content-Type.
func readAudio(w http.ResponseWriter, r *http.Request) (message.AudioPayload, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes+1))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reading audio: "+err.Error())
		return message.AudioPayload{}, false
	}
	if len(data) > maxAudioBytes {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("audio exceeds %d bytes", maxAudioBytes))
		return message.AudioPayload{}, false
	}
	return message.AudioPayload{Data: data, ContentType: r.Header.Get("Content-Type")}, true
}

func checkAudioSize(w http.ResponseWriter, r *http.Request, audio message.AudioPayload) bool {
	if len(audio.Data) > maxAudioBytes {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("audio exceeds %d bytes", maxAudioBytes))
		return false
	}
	return true
}

// chat answers one conversational turn.
//
// @Summary     Chat with the farming assistant
// @Description Sends an utterance (optionally with a [LANG:xx] directive, images and prior history) to the
// @Description chat provider. When no provider is configured or the call fails, a fallback reply in the
// @Description requested language is returned instead; this endpoint never fails for provider reasons.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Param       request  body      message.ChatRequest  true  "Chat turn"
// @Success     200      {object}  message.ChatResult
// @Failure     400      {object}  errorResponse
// @Router      /v1/chat [post]
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req message.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" && len(req.Images) == 0 {
		writeError(w, r, http.StatusBadRequest, "text or images required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Chat(r.Context(), req))
}

// voice runs a spoken turn.
//
// @Summary     Voice turn
// @Description Accepts a JSON VoiceRequest (base64 audio) or raw audio bytes. The audio is transcribed,
// @Description answered and, depending on the response mode, synthesized back to speech.
// @Tags        voice
// @Accept      json
// @Accept      audio/webm
// @Accept      audio/ogg
// @Accept      audio/wav
// @Produce     json
// @Param       request                  body    message.VoiceRequest  true   "Voice request (JSON). For raw audio, POST the bytes directly with the appropriate Content-Type."
// @Param       X-Pragati-Language       header  string                false  "Language code (raw audio uploads)"
// @Param       X-Pragati-Response-Mode  header  string                false  "text, audio or text+audio (raw audio uploads)"
// @Success     200  {object}  message.VoiceResult
// @Failure     400  {object}  errorResponse
// @Failure     413  {object}  errorResponse
// @Failure     502  {object}  errorResponse  "Speech backend error"
// @Failure     503  {object}  errorResponse  "Speech not configured"
// @Router      /v1/voice [post]
func (h *handlers) voice(w http.ResponseWriter, r *http.Request) {
	var req message.VoiceRequest
	if isJSON(r) {
		if !decodeJSON(w, r, &req) || !checkAudioSize(w, r, req.Audio) {
			return
		}
	} else {
		audio, ok := readAudio(w, r)
		if !ok {
			return
		}
		req.Audio = audio
		req.Language = r.Header.Get(headerLanguage)
		req.ResponseMode = message.ResponseMode(r.Header.Get(headerResponseMode))
	}

	res, err := h.svc.Converse(r.Context(), req)
	if err != nil {
		gateway.Logger(r.Context()).Error("voice turn failed", "error", err)
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// transcribe converts speech to text.
//
// @Summary     Speech to text
// @Tags        speech
// @Accept      json
// @Accept      audio/webm
// @Produce     json
// @Param       request             body    transcribeRequest  true   "Audio (JSON) or raw audio bytes"
// @Param       X-Pragati-Language  header  string             false  "Language code (raw audio uploads)"
// @Success     200  {object}  transcribeResponse
// @Failure     400  {object}  errorResponse
// @Failure     502  {object}  errorResponse
// @Failure     503  {object}  errorResponse
// @Router      /v1/speech/transcribe [post]
func (h *handlers) transcribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if isJSON(r) {
		if !decodeJSON(w, r, &req) || !checkAudioSize(w, r, req.Audio) {
			return
		}
	} else {
		audio, ok := readAudio(w, r)
		if !ok {
			return
		}
		req.Audio = audio
		req.Language = r.Header.Get(headerLanguage)
	}

	text, err := h.svc.SpeechToText(r.Context(), req.Audio, req.Language)
	if err != nil {
		gateway.Logger(r.Context()).Error("transcription failed", "error", err)
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, transcribeResponse{Transcript: text, Language: language.Normalize(req.Language)})
}

// synthesize converts text to speech.
//
// @Summary     Text to speech
// @Tags        speech
// @Accept      json
// @Produce     json
// @Param       request  body      synthesizeRequest  true  "Text to speak"
// @Success     200      {object}  synthesizeResponse
// @Failure     400      {object}  errorResponse
// @Failure     502      {object}  errorResponse
// @Failure     503      {object}  errorResponse
// @Router      /v1/speech/synthesize [post]
func (h *handlers) synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "text required")
		return
	}

	uri, err := h.svc.TextToSpeech(r.Context(), req.Text, req.Language)
	if err != nil {
		gateway.Logger(r.Context()).Error("synthesis failed", "error", err)
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, synthesizeResponse{Audio: uri, Language: language.Normalize(req.Language)})
}

// crops lists the crop catalogue.
//
// @Summary  List crops
// @Tags     finance
// @Produce  json
// @Success  200  {array}  finance.Crop
// @Router   /v1/finance/crops [get]
func (h *handlers) crops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Crops())
}

// calculate computes crop economics.
//
// @Summary  Calculate crop economics
// @Tags     finance
// @Accept   json
// @Produce  json
// @Param    request  body      finance.CalculationRequest  true  "Crop plan"
// @Success  200      {object}  finance.CropResult
// @Failure  400      {object}  errorResponse
// @Router   /v1/finance/calculate [post]
func (h *handlers) calculate(w http.ResponseWriter, r *http.Request) {
	var req finance.CalculationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Calculate(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// loans recommends loans.
//
// @Summary     Recommend loans
// @Description With a crop result, loans are sized to the plan; without one, they are chosen from the profile.
// @Tags        finance
// @Accept      json
// @Produce     json
// @Param       request  body      loansRequest  true  "Crop result and farmer profile"
// @Success     200      {object}  gateway.LoansResult
// @Failure     400      {object}  errorResponse
// @Router      /v1/finance/loans [post]
func (h *handlers) loans(w http.ResponseWriter, r *http.Request) {
	var req loansRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Crop == nil {
		writeJSON(w, http.StatusOK, h.svc.LoansForProfile(r.Context(), req.Profile))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Loans(r.Context(), *req.Crop, req.Profile))
}

// subsidies recommends subsidy schemes.
//
// @Summary  Recommend subsidies
// @Tags     finance
// @Accept   json
// @Produce  json
// @Param    request  body      subsidiesRequest  true  "Crop result and farmer profile"
// @Success  200      {object}  gateway.SubsidiesResult
// @Failure  400      {object}  errorResponse
// @Router   /v1/finance/subsidies [post]
func (h *handlers) subsidies(w http.ResponseWriter, r *http.Request) {
	var req subsidiesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Crop == nil {
		writeError(w, r, http.StatusBadRequest, "crop required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Subsidies(r.Context(), *req.Crop, req.Profile))
}

// advice produces financial advice.
//
// @Summary  Financial advice
// @Tags     finance
// @Accept   json
// @Produce  json
// @Param    request  body      adviceRequest  true  "Crop result"
// @Success  200      {object}  gateway.AdviceResult
// @Failure  400      {object}  errorResponse
// @Router   /v1/finance/advice [post]
func (h *handlers) advice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Crop == nil {
		writeError(w, r, http.StatusBadRequest, "crop required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Advice(r.Context(), *req.Crop))
}

// searchSchemes finds government schemes.
//
// @Summary  Search government schemes
// @Tags     schemes
// @Accept   json
// @Produce  json
// @Param    request  body      schemeSearchRequest  true  "Free-text criteria"
// @Success  200      {object}  gateway.SchemesResult
// @Failure  400      {object}  errorResponse
// @Router   /v1/schemes/search [post]
func (h *handlers) searchSchemes(w http.ResponseWriter, r *http.Request) {
	var req schemeSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Schemes(r.Context(), req.Criteria))
}

// roadmap lists application steps for a scheme.
//
// @Summary  Scheme application roadmap
// @Tags     schemes
// @Accept   json
// @Produce  json
// @Param    request  body      roadmapRequest  true  "Scheme and language"
// @Success  200      {object}  gateway.RoadmapResult
// @Failure  400      {object}  errorResponse
// @Router   /v1/schemes/roadmap [post]
func (h *handlers) roadmap(w http.ResponseWriter, r *http.Request) {
	var req roadmapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Scheme.ID == "" && req.Scheme.Title == "" {
		writeError(w, r, http.StatusBadRequest, "scheme required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Roadmap(r.Context(), req.Scheme, req.Language))
}
