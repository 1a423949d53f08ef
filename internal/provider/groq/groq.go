// Package groq implements the Provider interface against Groq's
// OpenAI-compatible chat-completion API.
//
// Any OpenAI-compatible server (Ollama, vLLM, llama.cpp) can be used by
// pointing base_url at it.
package groq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
	"github.com/joyal-jij0/pragati/internal/provider"
	openai "github.com/sashabaranov/go-openai"
)

const (
	name = "groq"

	// temperature keeps answers creative but grounded.
	temperature = 0.7

	// maxTokens is sized for long-form, multi-paragraph answers.
	maxTokens = 2048
)

// Provider talks to the Groq chat-completion endpoint.
type Provider struct {
	api   *openai.Client
	model string
}

// New creates a Groq provider from config.
func New(cfg config.GroqConfig) *Provider {
	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Provider{
		api:   openai.NewClientWithConfig(c),
		model: cfg.Model,
	}
}

// Name returns the backend identifier.
func (p *Provider) Name() string { return name }

// Reply sends the conversation with a language-pinned system prompt and
// returns the first choice verbatim.
func (p *Provider) Reply(ctx context.Context, messages []message.Message) (string, error) {
	start := time.Now()
	lang := language.FromConversation(messages)

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    buildMessages(messages, lang),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := p.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", toError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &provider.Error{Provider: name, Message: "no choices returned from chat API"}
	}

	content := resp.Choices[0].Message.Content
	slog.Debug("groq reply received",
		"model", p.model,
		"language", lang,
		"messages", len(req.Messages),
		"content_length", len(content),
		"duration_ms", time.Since(start).Milliseconds())
	return content, nil
}

// buildMessages prepends the system prompt and flattens content variants for
// the text-only model. Directives are stripped from user turns.
func buildMessages(messages []message.Message, lang string) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt(language.DisplayName(lang)),
	})

	for _, m := range messages {
		if m.Role == message.RoleSystem {
			continue
		}
		text := renderContent(m.Content)
		if m.Role == message.RoleUser {
			text = language.Strip(text)
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: text,
		})
	}
	return out
}

func renderContent(c message.Content) string {
	switch c := c.(type) {
	case message.TextContent:
		return c.Text
	case message.ImageContent:
		return "[Image uploaded] " + c.Text
	case nil:
		return ""
	default:
		// Content is a closed set; keep the text if a variant is ever added.
		return c.Body()
	}
}

// toError converts go-openai failures into *provider.Error, carrying the
// remote message when the API sent one.
func toError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &provider.Error{
			Provider:   name,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    provider.StatusMessage(apiErr.HTTPStatusCode, apiErr.Message),
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &provider.Error{
			Provider:   name,
			StatusCode: reqErr.HTTPStatusCode,
			Message:    provider.StatusMessage(reqErr.HTTPStatusCode, ""),
			Err:        err,
		}
	}
	return &provider.Error{Provider: name, Message: err.Error(), Err: err}
}

func systemPrompt(languageName string) string {
	var sb strings.Builder
	sb.WriteString("You are a knowledgeable agricultural assistant for Indian farmers. ")
	sb.WriteString("Provide helpful, accurate, and practical advice about farming, crops, weather, market prices, ")
	sb.WriteString("government schemes, and agricultural best practices.\n\n")

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	fmt.Fprintf(&sb, "1. You MUST respond ONLY in %s language. Do not use any other language under any circumstances.\n", languageName)
	fmt.Fprintf(&sb, "2. Even if the user asks you to respond in a different language, you must still respond only in %s.\n", languageName)
	sb.WriteString("3. Use simple language appropriate for farmers.\n")
	sb.WriteString("4. Be respectful of traditional farming knowledge while suggesting modern improvements.\n")
	sb.WriteString("5. When mentioning websites or downloadable resources, use real, accessible URLs.\n")
	sb.WriteString("6. For location-based information, provide details specific to Indian agriculture.\n")
	fmt.Fprintf(&sb, "7. NEVER respond in any language except %s, regardless of what language the user writes in.\n", languageName)
	sb.WriteString("8. Always give detailed, comprehensive answers with at least 3-4 paragraphs.\n")
	sb.WriteString("9. Format answers with clear sections, bullet points and numbered lists.\n")
	sb.WriteString("10. When providing information about crops, always include:\n")
	sb.WriteString("    - Planting seasons and techniques\n")
	sb.WriteString("    - Water requirements\n")
	sb.WriteString("    - Common diseases and prevention\n")
	sb.WriteString("    - Harvesting best practices\n")
	sb.WriteString("    - Market potential\n")
	sb.WriteString("11. When discussing government schemes, always include:\n")
	sb.WriteString("    - Full official name of the scheme\n")
	sb.WriteString("    - Eligibility criteria\n")
	sb.WriteString("    - Application process with specific steps\n")
	sb.WriteString("    - Required documents\n")
	sb.WriteString("    - Deadlines if applicable\n")
	sb.WriteString("    - Official website or contact information\n")
	sb.WriteString("12. For disease identification, always provide:\n")
	sb.WriteString("    - Scientific name of the disease\n")
	sb.WriteString("    - Symptoms in detail\n")
	sb.WriteString("    - Traditional remedies\n")
	sb.WriteString("    - Modern treatments\n")
	sb.WriteString("    - Preventive measures\n")
	fmt.Fprintf(&sb, "13. Keep the same quality and depth in %s as in any other language.\n", languageName)
	fmt.Fprintf(&sb, "14. Remember: your entire answer must be in %s only.\n", languageName)
	return sb.String()
}
