// internal/providers/ollama/provider.go
// Package ollama provides a ChatProvider backed by an Ollama-compatible HTTP endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/internal/appconfig"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/providers"
)

// Provider implements providers.ChatProvider using the Ollama /api/chat endpoint.
type Provider struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
	debug   bool
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: cfg.OllamaEndpoint(),
		model:   cfg.ModelName(),
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

// chatResponse defines the structure of a non-streaming /api/chat reply.
type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Chat sends the message history and returns the assistant's reply content.
func (p *Provider) Chat(ctx context.Context, messages []providers.ChatMessage) (string, error) {
	payload := map[string]any{
		"model":    p.model,
		"messages": messages,
		"stream":   false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	logging.LogRequest("OPSDECK->LLM", p.model, "", body)

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("LLM->OPSDECK", p.model, "", respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/chat returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ollama: decode /api/chat response: %w", err)
	}
	return result.Message.Content, nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	return nil
}
