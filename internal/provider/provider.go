// Package provider defines the conversational language-model backend.
//
// A Provider turns a caller-owned conversation into one reply, pinned to the
// language requested by the conversation's [LANG:xx] directive. Providers
// either succeed or fail with *Error; they never substitute canned output.
package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joyal-jij0/pragati/internal/message"
)

// Provider is the interface for chat-completion backends.
type Provider interface {
	// Name returns the backend identifier (e.g., "groq").
	Name() string

	// Reply produces the assistant's next message for the conversation.
	Reply(ctx context.Context, messages []message.Message) (string, error)
}

// Error reports a failed or unusable remote conversational call.
type Error struct {
	Provider   string
	StatusCode int    // 0 when no HTTP status was received
	Message    string // remote error message, status text, or local reason
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s api error: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusMessage picks the remote message if present, else the status text.
func StatusMessage(status int, remote string) string {
	if remote != "" {
		return remote
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
