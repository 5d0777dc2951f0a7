// internal/providers/provider.go

// Package providers defines the interface for the language-model backend.
// The assistant only needs blocking, whole-message chat turns; streaming and
// model management stay inside the concrete provider.
package providers

import "context"

// ChatMessage represents a single message in a chat conversation.
// Role is one of "system", "user", "assistant", or "tool".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatProvider is the interface the conversation loop speaks to the model
// through.
type ChatProvider interface {
	// Chat sends the full message history and returns the assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	// Close cleans up any resources used by the provider.
	Close() error
}
