// internal/mcp/decode.go
package mcp

import (
	"bufio"
	"encoding/json"
	"strings"
)

// responseScanBuffer caps a single response line; monitor dumps can be large.
const responseScanBuffer = 4 * 1024 * 1024

// DecodeResponse scans raw process output for the JSON-RPC object whose id
// matches expectedID and drills into the tool result envelope to the payload
// text. Diagnostic and non-matching lines are ignored. An error member on
// the matched object is returned as a *ToolError; any deviation from the
// envelope shape is a *DecodeError.
func DecodeResponse(raw, expectedID string) (string, error) {
	resp, err := correlate(raw, expectedID)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", &ToolError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if len(resp.Result) == 0 {
		return "", &DecodeError{Reason: "response carries neither result nor error"}
	}
	return extractPayload(resp.Result)
}

// correlate returns the first JSON line whose id matches expectedID. The
// process may emit diagnostics and partial output around the real response,
// so only parseable JSON objects are candidates.
func correlate(raw, expectedID string) (rpcResponse, error) {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), responseScanBuffer)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var resp rpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			continue
		}
		if normalizeID(resp.ID) == expectedID {
			return resp, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return rpcResponse{}, &DecodeError{Reason: "scan response stream: " + err.Error()}
	}
	return rpcResponse{}, &DecodeError{Reason: "no matching response"}
}

// resultEnvelope is the fixed nesting the tool protocol uses to carry the
// payload: result.content[0].text.
type resultEnvelope struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func extractPayload(result json.RawMessage) (string, error) {
	var envelope resultEnvelope
	if err := json.Unmarshal(result, &envelope); err != nil {
		return "", &DecodeError{Reason: "result envelope is not an object: " + err.Error()}
	}
	if len(envelope.Content) == 0 {
		return "", &DecodeError{Reason: "result envelope has no content entries"}
	}
	return envelope.Content[0].Text, nil
}
