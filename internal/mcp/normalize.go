// internal/mcp/normalize.go
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/opsdeck/opsdeck/internal/catalog"
)

// ToolResult is the terminal artifact of one tool invocation, handed back to
// the conversation loop and never mutated afterwards. Exactly one of the
// three outcomes applies: a structured value, a raw-text fallback, or an
// error description.
type ToolResult struct {
	Structured bool
	Value      any
	Raw        string
	Err        string
}

// ErrorResult wraps a bridge failure as a result the conversation can carry.
func ErrorResult(err error) ToolResult {
	return ToolResult{Err: err.Error()}
}

// MarshalJSON renders the shape the model is shown: {"result": ...} on
// success, {"error": ...} on failure.
func (r ToolResult) MarshalJSON() ([]byte, error) {
	if r.Err != "" {
		return json.Marshal(map[string]any{"error": r.Err})
	}
	if r.Structured {
		return json.Marshal(map[string]any{"result": r.Value})
	}
	return json.Marshal(map[string]any{"result": r.Raw})
}

// payloadStrategy is one way of locating decodable JSON inside the payload
// text. Strategies are tried in order; the first whose slice parses wins.
type payloadStrategy struct {
	name  string
	slice func(string) (string, bool)
}

// payloadStrategies: direct parse first, then re-slicing at a labeled value
// list or value object. The tool sometimes prefixes valid JSON with a
// human-readable label such as "Monitors: [...]".
var payloadStrategies = []payloadStrategy{
	{name: "direct", slice: func(s string) (string, bool) { return s, true }},
	{name: "labeled-array", slice: sliceAfterLabel(": [", '[')},
	{name: "labeled-object", slice: sliceAfterLabel(": {", '{')},
}

func sliceAfterLabel(marker string, open byte) func(string) (string, bool) {
	return func(s string) (string, bool) {
		if !strings.Contains(s, marker) {
			return "", false
		}
		idx := strings.IndexByte(s, open)
		if idx == -1 {
			return "", false
		}
		return s[idx:], true
	}
}

// Normalize attempts structured decoding of the embedded payload text and
// applies monitor post-filtering. When no strategy yields valid JSON the raw
// text is returned as the result; normalization never fails a call.
func Normalize(payload, toolName string, arguments map[string]any) ToolResult {
	for _, strategy := range payloadStrategies {
		candidate, ok := strategy.slice(payload)
		if !ok {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(candidate), &value); err != nil {
			continue
		}
		return ToolResult{Structured: true, Value: filterAlertMonitors(value, toolName, arguments)}
	}
	return ToolResult{Raw: payload}
}

// filterAlertMonitors narrows a decoded monitor list to alerting entries when
// the caller's own arguments asked for them: tool get_monitors with a filter
// argument containing "status:alert". The signal is deliberately independent
// of the extractor's alert-intent heuristic.
func filterAlertMonitors(value any, toolName string, arguments map[string]any) any {
	if toolName != catalog.ToolGetMonitors {
		return value
	}
	filter, _ := arguments["filter"].(string)
	if !strings.Contains(strings.ToLower(filter), "status:"+catalog.AlertState) {
		return value
	}
	list, ok := value.([]any)
	if !ok {
		return value
	}
	filtered := make([]any, 0, len(list))
	for _, entry := range list {
		monitor, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		status, _ := monitor["status"].(string)
		if strings.EqualFold(status, "ALERT") {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
