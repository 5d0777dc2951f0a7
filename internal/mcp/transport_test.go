// internal/mcp/transport_test.go
package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/opsdeck/opsdeck/internal/appconfig"
)

// TestTransportExecuteRoundTrip verifies the request line is written to the
// process stdin and its stdout is returned.
func TestTransportExecuteRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{MCPCommand: []string{"sh", "-c", "cat"}, ToolTimeout: 5}
	transport := NewTransport(cfg)

	out, err := transport.Execute(context.Background(), []byte(`{"jsonrpc":"2.0","id":"req-1"}`))
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(out, `"id":"req-1"`) {
		t.Fatalf("stdout did not echo the request line: %q", out)
	}
}

// TestTransportExecuteTimeout verifies that a hung process is bounded by the
// configured timeout and reported as a timeout, not a blocked caller.
func TestTransportExecuteTimeout(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{MCPCommand: []string{"sh", "-c", "sleep 10"}, ToolTimeout: 1}
	transport := NewTransport(cfg)

	start := time.Now()
	_, err := transport.Execute(context.Background(), []byte("{}"))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Execute blocked for %s", elapsed)
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
	if !terr.Timeout {
		t.Fatalf("expected Timeout set: %+v", terr)
	}
}

// TestTransportExecuteNonZeroExit verifies exit code and stderr are captured.
func TestTransportExecuteNonZeroExit(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{MCPCommand: []string{"sh", "-c", "echo oops >&2; exit 3"}, ToolTimeout: 5}
	transport := NewTransport(cfg)

	_, err := transport.Execute(context.Background(), []byte("{}"))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if !terr.Exited || terr.ExitCode != 3 {
		t.Fatalf("unexpected exit info: %+v", terr)
	}
	if !strings.Contains(terr.Stderr, "oops") {
		t.Fatalf("stderr not captured: %q", terr.Stderr)
	}
	if !strings.Contains(terr.Error(), "exit code 3") {
		t.Fatalf("unexpected message: %s", terr.Error())
	}
}

// TestTransportExecuteEmptyOutput verifies that a clean exit with no stdout
// is reported distinctly from a process failure.
func TestTransportExecuteEmptyOutput(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{MCPCommand: []string{"sh", "-c", "exit 0"}, ToolTimeout: 5}
	transport := NewTransport(cfg)

	_, err := transport.Execute(context.Background(), []byte("{}"))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if !terr.EmptyOutput || terr.Exited || terr.Timeout {
		t.Fatalf("expected empty-output error: %+v", terr)
	}
}

// TestTransportExecuteSpawnFailure verifies an unlaunchable command surfaces
// as a spawn error.
func TestTransportExecuteSpawnFailure(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{MCPCommand: []string{"/nonexistent-tool-binary"}, ToolTimeout: 5}
	transport := NewTransport(cfg)

	_, err := transport.Execute(context.Background(), []byte("{}"))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if terr.Exited || terr.Timeout || terr.EmptyOutput {
		t.Fatalf("expected spawn failure: %+v", terr)
	}
	if terr.Err == nil {
		t.Fatal("expected wrapped spawn error")
	}
}
