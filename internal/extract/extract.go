// internal/extract/extract.go
// Package extract scans a language model's free-form reply for an embedded
// tool call, sanitizes and validates it, and applies argument repair.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/opsdeck/opsdeck/internal/catalog"
	"github.com/opsdeck/opsdeck/internal/logging"
)

// Invocation is the parsed, validated intent to call one tool.
type Invocation struct {
	Tool      string
	Arguments map[string]any
}

// Hints carries intent signals derived from the user's own message, used for
// argument repair.
type Hints struct {
	AlertQuery bool
}

// alertIntentPattern flags requests for alerting monitors: a fetch verb
// combined with an alert word anywhere after it.
var alertIntentPattern = regexp.MustCompile(`(?is)(get|list|show).*\b(alert|alerts|alerting)\b`)

// HintsFromMessage derives intent hints from the raw user message.
func HintsFromMessage(message string) Hints {
	return Hints{AlertQuery: alertIntentPattern.MatchString(message)}
}

var (
	fencedBlockPattern  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	braceObjectPattern  = regexp.MustCompile(`(?s)(\{.*\})`)
	lineCommentPattern  = regexp.MustCompile(`//[^\n]*`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// candidateMatcher is one way of locating a tool-call payload in a reply.
// Matchers are tried in order; the first hit wins.
type candidateMatcher struct {
	name string
	find func(string) (string, bool)
}

var candidateMatchers = []candidateMatcher{
	{name: "fenced-block", find: findFencedBlock},
	{name: "brace-object", find: findBraceObject},
}

func findFencedBlock(reply string) (string, bool) {
	m := fencedBlockPattern.FindStringSubmatch(reply)
	if len(m) != 2 || strings.TrimSpace(m[1]) == "" {
		return "", false
	}
	return m[1], true
}

func findBraceObject(reply string) (string, bool) {
	m := braceObjectPattern.FindStringSubmatch(reply)
	if len(m) != 2 {
		return "", false
	}
	return m[1], true
}

// stripComments removes line and block comments the model may have emitted
// despite instructions; they make the candidate strictly invalid JSON.
func stripComments(candidate string) string {
	cleaned := lineCommentPattern.ReplaceAllString(candidate, "")
	return blockCommentPattern.ReplaceAllString(cleaned, "")
}

// Extractor turns model replies into tool invocations, consulting the
// catalog for argument schemas.
type Extractor struct {
	tools *catalog.Catalog
}

// New builds an Extractor over the given catalog.
func New(tools *catalog.Catalog) *Extractor {
	return &Extractor{tools: tools}
}

// Extract scans a model reply for an embedded tool call. A nil return means
// no tool call was detected, which is a valid outcome rather than an error.
func (e *Extractor) Extract(reply string, hints Hints) *Invocation {
	candidate, matcher, ok := findCandidate(reply)
	if !ok {
		return nil
	}

	cleaned := stripComments(candidate)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		logging.LogEvent("Tool call candidate (%s) did not parse: %v", matcher, err)
		return nil
	}

	name, ok := parsed["tool_name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil
	}
	arguments, _ := parsed["arguments"].(map[string]any)
	if arguments == nil {
		arguments = map[string]any{}
	}

	inv := &Invocation{Tool: name, Arguments: arguments}
	e.validate(inv)
	repair(inv, hints)
	inv.Arguments = dropNullArguments(inv.Arguments)
	return inv
}

func findCandidate(reply string) (candidate, matcher string, ok bool) {
	for _, m := range candidateMatchers {
		if found, hit := m.find(reply); hit {
			return found, m.name, true
		}
	}
	return "", "", false
}

// validate checks the arguments against the tool's declared schema. A
// mismatch is logged but does not block dispatch; the backend reports its
// own argument errors through the JSON-RPC error member.
func (e *Extractor) validate(inv *Invocation) {
	if e.tools == nil {
		return
	}
	tool, ok := e.tools.Lookup(inv.Tool)
	if !ok {
		logging.LogEvent("Tool call names unknown tool %q", inv.Tool)
		return
	}
	if len(tool.Parameters) == 0 {
		return
	}
	argBytes, err := json.Marshal(inv.Arguments)
	if err != nil {
		return
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(tool.Parameters), gojsonschema.NewBytesLoader(argBytes))
	if err != nil || result.Valid() {
		return
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	logging.LogEvent("Tool call arguments failed schema validation: tool=%s issues=%s", inv.Tool, strings.Join(details, "; "))
}

// repair injects the alert-state filter when the user's message asked for
// alerting monitors but the model left groupStates out. An argument the
// model provided is never overridden, even a null one.
func repair(inv *Invocation, hints Hints) {
	if !hints.AlertQuery || !strings.EqualFold(inv.Tool, catalog.ToolGetMonitors) {
		return
	}
	if _, ok := inv.Arguments[catalog.GroupStatesParam]; ok {
		return
	}
	inv.Arguments[catalog.GroupStatesParam] = []any{catalog.AlertState}
	logging.LogEvent("Added %s: [%s] to tool call", catalog.GroupStatesParam, catalog.AlertState)
}

// dropNullArguments removes arguments whose value is null; they are never
// sent over the wire.
func dropNullArguments(arguments map[string]any) map[string]any {
	cleaned := make(map[string]any, len(arguments))
	for key, value := range arguments {
		if value == nil {
			continue
		}
		cleaned[key] = value
	}
	return cleaned
}
