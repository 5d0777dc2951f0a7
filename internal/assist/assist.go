// internal/assist/assist.go
// Package assist drives the conversation: model calls, tool-call extraction
// and execution, and the final natural-language answer.
package assist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/opsdeck/opsdeck/internal/appconfig"
	"github.com/opsdeck/opsdeck/internal/catalog"
	"github.com/opsdeck/opsdeck/internal/extract"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/mcp"
	"github.com/opsdeck/opsdeck/internal/providers"
)

// ToolCaller executes one tool invocation and reports the outcome as data.
type ToolCaller interface {
	Call(ctx context.Context, name string, arguments map[string]any) mcp.ToolResult
}

// Assistant holds the collaborators for one interactive session. The message
// history itself lives with the caller and is only appended to.
type Assistant struct {
	cfg       appconfig.Config
	provider  providers.ChatProvider
	tools     *catalog.Catalog
	extractor *extract.Extractor
	executor  ToolCaller
	session   string
}

// New assembles an Assistant with a fresh session id.
func New(cfg appconfig.Config, provider providers.ChatProvider, tools *catalog.Catalog, executor ToolCaller) *Assistant {
	return &Assistant{
		cfg:       cfg,
		provider:  provider,
		tools:     tools,
		extractor: extract.New(tools),
		executor:  executor,
		session:   uuid.NewString(),
	}
}

// Session returns the id stamped into this assistant's log lines.
func (a *Assistant) Session() string {
	return a.session
}

// ProcessTurn handles one user message: model call, tool-call extraction, at
// most one tool execution, and the follow-up model call that explains the
// tool result. It returns the reply to show and the updated history. An
// error return means the model itself was unreachable; tool failures are
// folded into the conversation instead.
func (a *Assistant) ProcessTurn(ctx context.Context, userMessage string, history []providers.ChatMessage) (string, []providers.ChatMessage, error) {
	hints := extract.HintsFromMessage(userMessage)
	if hints.AlertQuery {
		logging.LogEvent("Detected request for alert monitors: session=%s", a.session)
	}

	messages := make([]providers.ChatMessage, 0, len(history)+2)
	messages = append(messages, providers.ChatMessage{Role: "system", Content: a.tools.SystemPrompt()})
	messages = append(messages, history...)
	messages = append(messages, providers.ChatMessage{Role: "user", Content: userMessage})

	reply, err := a.provider.Chat(ctx, messages)
	if err != nil {
		return "", history, fmt.Errorf("model call: %w", err)
	}

	history = append(history, providers.ChatMessage{Role: "user", Content: userMessage})

	inv := a.extractor.Extract(reply, hints)
	if inv == nil {
		history = append(history, providers.ChatMessage{Role: "assistant", Content: reply})
		return reply, history, nil
	}
	logging.LogEvent("Tool call detected: session=%s tool=%s args=%s", a.session, inv.Tool, mcp.FormatArguments(inv.Arguments))

	result := a.executor.Call(ctx, inv.Tool, inv.Arguments)
	resultJSON, err := json.Marshal(result)
	if err != nil {
		resultJSON = []byte(`{"error":"failed to encode tool result"}`)
	}

	history = append(history, providers.ChatMessage{Role: "assistant", Content: reply})
	history = append(history, providers.ChatMessage{Role: "tool", Content: string(resultJSON)})

	messages = append(messages, providers.ChatMessage{Role: "assistant", Content: reply})
	messages = append(messages, providers.ChatMessage{Role: "tool", Content: string(resultJSON)})

	final, err := a.provider.Chat(ctx, messages)
	if err != nil {
		return "", history, fmt.Errorf("model call with tool result: %w", err)
	}
	history = append(history, providers.ChatMessage{Role: "assistant", Content: final})
	return final, history, nil
}
