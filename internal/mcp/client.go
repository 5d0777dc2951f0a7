// internal/mcp/client.go
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opsdeck/opsdeck/internal/appconfig"
	"github.com/opsdeck/opsdeck/internal/catalog"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/util"
)

// wire abstracts the raw process exchange so tests can substitute one.
type wire interface {
	Execute(ctx context.Context, requestLine []byte) (string, error)
	CommandLabel() string
}

// Client executes one tool invocation end to end: encode, spawn and
// exchange, correlate and decode, normalize. Failures are captured into the
// ToolResult rather than raised, so the conversation always gets a turn.
type Client struct {
	wire wire
}

// NewClient builds a Client spawning the configured tool command per call.
func NewClient(cfg appconfig.Config) *Client {
	return &Client{wire: NewTransport(cfg)}
}

// Call invokes the named tool with the given arguments and returns the
// normalized result. The caller's argument map is never mutated.
func (c *Client) Call(ctx context.Context, name string, arguments map[string]any) ToolResult {
	wireArgs := make(map[string]any, len(arguments)+1)
	for k, v := range arguments {
		wireArgs[k] = v
	}
	// Monitor queries with no state filter check every group state.
	if name == catalog.ToolGetMonitors {
		if _, ok := wireArgs[catalog.GroupStatesParam]; !ok {
			wireArgs[catalog.GroupStatesParam] = catalog.AllGroupStates
		}
	}

	line, id, err := encodeRequest(name, wireArgs)
	if err != nil {
		return ErrorResult(err)
	}

	label := c.wire.CommandLabel()
	logging.LogRequest("OPSDECK->MCP", label, name, line)

	raw, err := c.wire.Execute(ctx, line)
	if err != nil {
		logging.LogEvent("[ERROR] Tool exchange failed: tool=%s reason=%v", name, err)
		return ErrorResult(err)
	}
	logging.LogRequest("MCP->OPSDECK", label, name, util.TruncateRunes(raw, 2000))

	payload, err := DecodeResponse(raw, id)
	if err != nil {
		logging.LogEvent("[ERROR] Tool response rejected: tool=%s id=%s reason=%v", name, id, err)
		return ErrorResult(err)
	}

	result := Normalize(payload, name, wireArgs)
	logging.LogEvent("Tool executed: tool=%s structured=%t", name, result.Structured)
	return result
}

// FormatArguments renders an argument map for log lines and listings.
func FormatArguments(arguments map[string]any) string {
	if len(arguments) == 0 {
		return "{}"
	}
	data, err := json.Marshal(arguments)
	if err != nil {
		return fmt.Sprintf("%v", arguments)
	}
	return string(data)
}
