// Package fakerunner provides a fake implementation of execx.Runner for testing.
package fakerunner

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Runner is a fake implementation of execx.Runner and execx.Streamer for testing.
type Runner struct {
	mu      sync.Mutex
	outputs map[string][]byte
	errors  map[string]error
	calls   []Call
}

// Call represents a captured command execution call.
type Call struct {
	Name   string
	Args   []string
	Stream bool
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// New creates a new fake runner.
func New() *Runner {
	return &Runner{
		outputs: make(map[string][]byte),
		errors:  make(map[string]error),
		calls:   []Call{},
	}
}

// SetOutput sets the output for a specific command.
func (r *Runner) SetOutput(name string, args []string, output []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[r.makeKey(name, args)] = output
}

// SetError sets the error for a specific command.
func (r *Runner) SetError(name string, args []string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[r.makeKey(name, args)] = err
}

// SetResult sets both the output and the error for a specific command,
// mimicking a process that printed a diagnostic and exited non-zero.
func (r *Runner) SetResult(name string, args []string, output []byte, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.makeKey(name, args)
	r.outputs[key] = output
	r.errors[key] = err
}

// CombinedOutput implements execx.Runner.
func (r *Runner) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: args})

	key := r.makeKey(name, args)

	output, hasOutput := r.outputs[key]
	if err, exists := r.errors[key]; exists {
		if hasOutput {
			return output, err
		}
		return nil, err
	}

	if hasOutput {
		return output, nil
	}

	// Default behavior - return empty output and no error
	return []byte{}, nil
}

// Stream implements execx.Streamer. Only the scripted error is honoured.
func (r *Runner) Stream(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: args, Stream: true})
	return r.errors[r.makeKey(name, args)]
}

// GetCalls returns all captured command calls.
func (r *Runner) GetCalls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CommandLines returns the captured calls rendered as command lines.
func (r *Runner) CommandLines() []string {
	calls := r.GetCalls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.String())
	}
	return lines
}

// Reset clears all stored outputs, errors, and calls.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs = make(map[string][]byte)
	r.errors = make(map[string]error)
	r.calls = []Call{}
}

func (r *Runner) makeKey(name string, args []string) string {
	return fmt.Sprintf("%s %s", name, strings.Join(args, " "))
}
