// internal/mcp/errors.go
package mcp

import (
	"fmt"
	"strings"
	"time"
)

// TransportError reports a failure of the raw exchange with the tool
// process: spawn failure, timeout, non-zero exit, or empty output. Content
// level errors travel inside the JSON-RPC error member instead (ToolError).
type TransportError struct {
	Timeout      bool
	TimeoutAfter time.Duration
	ExitCode     int
	Exited       bool
	EmptyOutput  bool
	Stderr       string
	Err          error
}

func (e *TransportError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("tool process timed out after %s", e.TimeoutAfter)
	case e.Exited:
		msg := fmt.Sprintf("tool process failed with exit code %d", e.ExitCode)
		if s := strings.TrimSpace(e.Stderr); s != "" {
			msg += ": " + s
		}
		return msg
	case e.EmptyOutput:
		return "received empty response from tool process"
	case e.Err != nil:
		return fmt.Sprintf("tool process could not be started: %v", e.Err)
	}
	return "tool process exchange failed"
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response stream with no matching correlation id or
// a result envelope that deviates from the tool protocol contract.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return e.Reason }

// ToolError carries the explicit error member of a JSON-RPC response. It is
// data about the call, not a fault of the bridge.
type ToolError struct {
	Code    int
	Message string
}

func (e *ToolError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("tool error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("tool error: %s", e.Message)
}
