// internal/catalog/catalog_test.go
package catalog

import (
	"strings"
	"testing"
)

// TestDefaultCatalog verifies the shipped tool set.
func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	tools := Default().Tools()
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	wantOrder := []string{ToolGetMonitors, ToolListIncidents, ToolListDashboards}
	for i, tool := range tools {
		if tool.Name != wantOrder[i] {
			t.Errorf("tool %d = %q, want %q", i, tool.Name, wantOrder[i])
		}
		if tool.Description == "" {
			t.Errorf("tool %q has no description", tool.Name)
		}
		if tool.Parameters["type"] != "object" {
			t.Errorf("tool %q parameters are not an object schema", tool.Name)
		}
	}
}

// TestLookup verifies case-insensitive, whitespace-tolerant tool resolution.
func TestLookup(t *testing.T) {
	t.Parallel()

	c := Default()
	cases := []struct {
		name  string
		found bool
	}{
		{"get_monitors", true},
		{"GET_MONITORS", true},
		{"  Get_Monitors  ", true},
		{"list_incidents", true},
		{"list_dashboards", true},
		{"delete_monitors", false},
		{"", false},
	}
	for _, tc := range cases {
		if _, ok := c.Lookup(tc.name); ok != tc.found {
			t.Errorf("Lookup(%q) found=%v, want %v", tc.name, ok, tc.found)
		}
	}
}

// TestToolsReturnsCopy verifies callers cannot mutate the catalog.
func TestToolsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Tools()[0].Name = "mutated"
	if c.Tools()[0].Name != ToolGetMonitors {
		t.Fatal("Tools() exposed the internal slice")
	}
}

// TestSystemPrompt verifies the prompt carries the tool definitions and the
// formatting rules the extractor depends on.
func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	prompt := Default().SystemPrompt()
	for _, want := range []string{
		`"name": "get_monitors"`,
		`"name": "list_incidents"`,
		`"name": "list_dashboards"`,
		"```json",
		`"tool_name": "get_monitors"`,
		"NEVER include comments in JSON",
		`groupStates parameter set to ["alert"]`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
