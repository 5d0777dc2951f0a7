// internal/mcp/rpc.go
// Package mcp implements the bridge to the external Datadog MCP tool process:
// request encoding, per-call process transport, response correlation, and
// payload normalization.
package mcp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// rpcMethodCallTool is the single method the bridge invokes.
const rpcMethodCallTool = "tools/call"

// rpcRequest is one line-delimited JSON-RPC 2.0 request to the tool process.
type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// newRequestID derives a correlation id from the wall clock in milliseconds,
// unique within the process lifetime for our one-call-at-a-time usage.
func newRequestID() string {
	return fmt.Sprintf("req-%d", time.Now().UnixMilli())
}

// encodeRequest serializes one tool invocation to a single JSON line and
// returns the line together with its correlation id.
func encodeRequest(toolName string, arguments map[string]any) ([]byte, string, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}
	id := newRequestID()
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  rpcMethodCallTool,
		Params:  rpcParams{Name: toolName, Arguments: arguments},
	}
	line, err := json.Marshal(req)
	if err != nil {
		return nil, "", fmt.Errorf("encode rpc request: %w", err)
	}
	return line, id, nil
}

// normalizeID renders a raw JSON-RPC id as a comparable string, unquoting
// string ids and leaving numeric ids as their literal text.
func normalizeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '"' {
		if unquoted, err := strconv.Unquote(trimmed); err == nil {
			return unquoted
		}
		trimmed = strings.Trim(trimmed, "\"")
	}
	return trimmed
}
