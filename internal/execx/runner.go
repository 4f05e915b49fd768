// Package execx provides a testable abstraction for command execution.
package execx

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner defines an interface for executing external commands.
type Runner interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Streamer runs a long-lived command attached to the caller's terminal.
type Streamer interface {
	Stream(ctx context.Context, name string, args ...string) error
}

// RealRunner implements Runner and Streamer using os/exec.
type RealRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewRealRunner creates a new RealRunner writing streamed output to the process stdio.
func NewRealRunner() *RealRunner {
	return &RealRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// CombinedOutput executes a command and returns its combined stdout and stderr output.
func (r *RealRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Stream executes a command with its output attached to the runner's writers
// and blocks until it exits or ctx is cancelled.
func (r *RealRunner) Stream(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 - arguments are built internally
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}
