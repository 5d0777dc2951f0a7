// internal/mcp/transport.go
package mcp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/internal/appconfig"
)

// Transport owns the raw exchange with the external tool process. Every call
// spawns a fresh process; nothing lingers between calls.
type Transport struct {
	command []string
	timeout time.Duration
}

// NewTransport builds a Transport from the configured tool command and timeout.
func NewTransport(cfg appconfig.Config) *Transport {
	return &Transport{
		command: cfg.ToolCommand(),
		timeout: cfg.ToolTimeoutDuration(),
	}
}

// CommandLabel names the tool process for log lines.
func (t *Transport) CommandLabel() string {
	return strings.Join(t.command, " ")
}

// Execute spawns the tool process, writes the request line to its stdin,
// closes the input, and waits for exit or the configured timeout. It returns
// the captured stdout text, or a *TransportError describing the failure.
func (t *Transport) Execute(ctx context.Context, requestLine []byte) (string, error) {
	if len(t.command) == 0 {
		return "", &TransportError{Err: errors.New("no tool command configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.command[0], t.command[1:]...)
	cmd.Env = os.Environ()
	cmd.Stdin = bytes.NewReader(append(append([]byte(nil), requestLine...), '\n'))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return "", &TransportError{
			Timeout:      true,
			TimeoutAfter: t.timeout,
			Stderr:       stderr.String(),
			Err:          ctxErr,
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &TransportError{
				Exited:   true,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
				Err:      err,
			}
		}
		return "", &TransportError{Err: err}
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", &TransportError{EmptyOutput: true, Stderr: stderr.String()}
	}
	return out, nil
}
