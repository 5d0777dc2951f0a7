// internal/mcp/normalize_test.go
package mcp

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/opsdeck/opsdeck/internal/catalog"
)

// TestNormalizeDirectJSON verifies plain JSON payloads decode structurally.
func TestNormalizeDirectJSON(t *testing.T) {
	t.Parallel()

	result := Normalize(`[{"status":"OK"}]`, catalog.ToolGetMonitors, map[string]any{})
	if !result.Structured {
		t.Fatalf("expected structured result, got %+v", result)
	}
	list, ok := result.Value.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("unexpected value: %#v", result.Value)
	}
}

// TestNormalizeLabeledPayload verifies the re-slice heuristic recovers JSON
// prefixed with a human-readable label, and that the alert filter only
// applies when the caller asked for alerting monitors.
func TestNormalizeLabeledPayload(t *testing.T) {
	t.Parallel()

	payload := `Monitors: [{"status":"OK"},{"status":"Alert"},{"status":"ALERT"}]`

	unfiltered := Normalize(payload, catalog.ToolGetMonitors, map[string]any{})
	list, ok := unfiltered.Value.([]any)
	if !ok || len(list) != 3 {
		t.Fatalf("expected full list, got %#v", unfiltered.Value)
	}

	filtered := Normalize(payload, catalog.ToolGetMonitors, map[string]any{"filter": "STATUS:ALERT"})
	list, ok = filtered.Value.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected two alert entries, got %#v", filtered.Value)
	}
	for _, entry := range list {
		status := entry.(map[string]any)["status"].(string)
		if status != "Alert" && status != "ALERT" {
			t.Fatalf("non-alert entry survived the filter: %q", status)
		}
	}
}

// TestNormalizeLabeledObject verifies the value-object heuristic.
func TestNormalizeLabeledObject(t *testing.T) {
	t.Parallel()

	result := Normalize(`Incident summary: {"count": 2}`, catalog.ToolListIncidents, nil)
	if !result.Structured {
		t.Fatalf("expected structured result, got %+v", result)
	}
	obj, ok := result.Value.(map[string]any)
	if !ok || obj["count"] != float64(2) {
		t.Fatalf("unexpected value: %#v", result.Value)
	}
}

// TestNormalizeFallbackRaw verifies unparsable payloads degrade to raw text
// without an error.
func TestNormalizeFallbackRaw(t *testing.T) {
	t.Parallel()

	payload := "the backend is unreachable, try again later"
	result := Normalize(payload, catalog.ToolGetMonitors, nil)
	if result.Structured || result.Err != "" {
		t.Fatalf("expected raw fallback, got %+v", result)
	}
	if result.Raw != payload {
		t.Fatalf("raw text altered: %q", result.Raw)
	}
}

// TestNormalizeAlertFilterScope verifies the filter never applies to other
// tools or to non-list payloads.
func TestNormalizeAlertFilterScope(t *testing.T) {
	t.Parallel()

	args := map[string]any{"filter": "status:alert"}

	other := Normalize(`[{"status":"OK"}]`, catalog.ToolListDashboards, args)
	if list := other.Value.([]any); len(list) != 1 {
		t.Fatalf("filter applied to wrong tool: %#v", other.Value)
	}

	object := Normalize(`{"status":"OK"}`, catalog.ToolGetMonitors, args)
	if _, ok := object.Value.(map[string]any); !ok {
		t.Fatalf("non-list payload altered: %#v", object.Value)
	}
}

// TestNormalizeIdempotent verifies re-normalizing an already-normalized
// payload yields the same output (no double-filtering).
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	args := map[string]any{"filter": "status:alert"}
	payload := `Monitors: [{"status":"OK"},{"status":"ALERT"}]`

	first := Normalize(payload, catalog.ToolGetMonitors, args)
	intermediate, err := json.Marshal(first.Value)
	if err != nil {
		t.Fatalf("marshal intermediate: %v", err)
	}
	second := Normalize(string(intermediate), catalog.ToolGetMonitors, args)

	if !reflect.DeepEqual(first.Value, second.Value) {
		t.Fatalf("normalize not idempotent: %#v vs %#v", first.Value, second.Value)
	}
}

// TestToolResultMarshalJSON verifies the wire shape shown to the model.
func TestToolResultMarshalJSON(t *testing.T) {
	t.Parallel()

	ok, err := json.Marshal(ToolResult{Structured: true, Value: []any{"x"}})
	if err != nil || string(ok) != `{"result":["x"]}` {
		t.Fatalf("unexpected success shape: %s (%v)", ok, err)
	}
	raw, err := json.Marshal(ToolResult{Raw: "plain text"})
	if err != nil || string(raw) != `{"result":"plain text"}` {
		t.Fatalf("unexpected raw shape: %s (%v)", raw, err)
	}
	failed, err := json.Marshal(ToolResult{Err: "boom"})
	if err != nil || string(failed) != `{"error":"boom"}` {
		t.Fatalf("unexpected error shape: %s (%v)", failed, err)
	}
}
