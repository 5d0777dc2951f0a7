// internal/catalog/catalog.go
// Package catalog declares the tools exposed to the language model and the
// system prompt that advertises them. The catalog is constructed once at
// startup and treated as immutable afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tool names understood by the Datadog MCP server.
const (
	ToolGetMonitors    = "get_monitors"
	ToolListIncidents  = "list_incidents"
	ToolListDashboards = "list_dashboards"
)

const (
	// GroupStatesParam filters get_monitors by monitor state.
	GroupStatesParam = "groupStates"
	// AlertState is the monitor state users mean by "alerting".
	AlertState = "alert"
)

// AllGroupStates lists every monitor state the backend recognizes.
var AllGroupStates = []string{"alert", "warn", "no data", "ok"}

// Descriptor defines one tool: its name, purpose, and parameter schema.
// Parameters holds a JSON-schema object, the shape the model is shown and
// the shape extracted arguments are validated against.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Catalog is the fixed set of tool descriptors for a session.
type Catalog struct {
	tools []Descriptor
	index map[string]Descriptor
}

// New builds a catalog from the given descriptors.
func New(tools []Descriptor) *Catalog {
	index := make(map[string]Descriptor, len(tools))
	for _, tool := range tools {
		index[strings.ToLower(tool.Name)] = tool
	}
	return &Catalog{tools: tools, index: index}
}

// Default returns the catalog of Datadog tools this assistant ships with.
func Default() *Catalog {
	return New([]Descriptor{
		{
			Name:        ToolGetMonitors,
			Description: "Fetch the status of Datadog monitors.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					GroupStatesParam: map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "States to filter (e.g., alert, warn, no data, ok).",
					},
					"name": map[string]any{
						"type":        "string",
						"description": "Filter by name.",
					},
					"tags": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Filter by tags.",
					},
				},
				"required": []string{},
			},
		},
		{
			Name:        ToolListIncidents,
			Description: "Retrieve a list of incidents from Datadog.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filter": map[string]any{
						"type":        "string",
						"description": "Filter parameters for incidents (e.g., status, priority).",
					},
					"pagination": map[string]any{
						"type":        "object",
						"description": "Pagination details like page size/offset.",
					},
				},
				"required": []string{},
			},
		},
		{
			Name:        ToolListDashboards,
			Description: "Get a list of dashboards from Datadog.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tags": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Filter dashboards by tags.",
					},
				},
				"required": []string{},
			},
		},
	})
}

// Tools returns the descriptors in declaration order.
func (c *Catalog) Tools() []Descriptor {
	return append([]Descriptor(nil), c.tools...)
}

// Lookup returns the descriptor for a tool name, case-insensitively.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	tool, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	return tool, ok
}

// SystemPrompt renders the instructions handed to the model, including the
// tool list as JSON and the formatting rules the extractor depends on.
func (c *Catalog) SystemPrompt() string {
	toolJSON, err := json.MarshalIndent(c.tools, "", "  ")
	if err != nil {
		toolJSON = []byte("[]")
	}
	return fmt.Sprintf(`You are a Datadog SRE assistant that helps users retrieve information from Datadog.
You have access to these tools:
%s

When the user asks for Datadog information, you should:
1. Determine which tool to use
2. Generate a JSON tool call to execute the appropriate command
3. Keep it simple and focused on the task

Your JSON tool call should be in this format:
`+"```json"+`
{
    "tool_name": "get_monitors",
    "arguments": {}
}
`+"```"+`

IMPORTANT RULES:
1. NEVER include comments in JSON - NO COMMENTS LIKE // or /* */ ANYWHERE in the JSON, not even as examples
2. If the user doesn't specify optional parameters, OMIT them entirely
3. Only include parameters the user has explicitly mentioned
4. Always respond to direct questions or requests for Datadog data with a tool call
5. DO NOT invent fake data or make up responses
6. ALWAYS format your JSON properly with DOUBLE QUOTES for all keys and string values
7. DO NOT include explanations inside the JSON, put them before or after

SPECIAL INSTRUCTIONS FOR ALERT MONITORS:
- If a user asks for "alert" monitors, use "get_monitors" with groupStates parameter set to ["alert"]
- When filtering monitors by status, use the groupStates parameter, not the status field
- For example: {"tool_name": "get_monitors", "arguments": {"groupStates": ["alert"]}}`, toolJSON)
}
