package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/trly/tickle/internal/execx"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// Driver runs compose CLI commands against a compose file. Commands are tried
// in order until one succeeds, so "docker compose" can fall back to the
// standalone "docker-compose" binary.
type Driver struct {
	runner   execx.Runner
	streamer execx.Streamer
	commands []string
	logger   log.Logger
}

// NewDriver creates a Driver trying each of commands in order.
func NewDriver(runner execx.Runner, streamer execx.Streamer, commands []string, logger log.Logger) *Driver {
	return &Driver{
		runner:   runner,
		streamer: streamer,
		commands: commands,
		logger:   logger,
	}
}

// StepArgs returns the compose arguments for step on file.
func StepArgs(file string, step service.Step) ([]string, error) {
	switch step {
	case service.StepDown:
		return []string{"-f", file, "down"}, nil
	case service.StepUp:
		return []string{"-f", file, "up", "-d"}, nil
	case service.StepNone, service.StepRestart, service.StepStop, service.StepStart:
		return nil, fmt.Errorf("step %q is not a compose step", step)
	}
	return nil, fmt.Errorf("unknown step %d", step)
}

// Act runs step against file with the first compose command that succeeds.
// When none of the commands can be executed the error is ErrBackendUnavailable.
func (d *Driver) Act(ctx context.Context, file string, step service.Step) error {
	stepArgs, err := StepArgs(file, step)
	if err != nil {
		return err
	}

	var lastErr error
	for _, command := range d.commands {
		name, args, ok := splitCommand(command, stepArgs)
		if !ok {
			continue
		}

		d.logger.Debug("Running compose command", "command", command, "args", strings.Join(stepArgs, " "))
		output, err := d.runner.CombinedOutput(ctx, name, args...)
		if err == nil {
			return nil
		}
		if execx.IsNotFound(err) {
			d.logger.Debug("Compose command not available", "command", command)
			continue
		}

		d.logger.Debug("Compose command failed, trying next", "command", command, "error", err)
		lastErr = &CommandError{
			Command: command,
			Args:    args,
			Output:  strings.TrimSpace(string(output)),
			Cause:   err,
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return d.unavailable(file)
}

// Logs follows the logs of the stack defined by file until ctx is cancelled
// or the command exits.
func (d *Driver) Logs(ctx context.Context, file string) error {
	logArgs := []string{"-f", file, "logs", "-f"}

	for _, command := range d.commands {
		name, args, ok := splitCommand(command, logArgs)
		if !ok {
			continue
		}
		err := d.streamer.Stream(ctx, name, args...)
		if execx.IsNotFound(err) {
			d.logger.Debug("Compose command not available", "command", command)
			continue
		}
		return err
	}
	return d.unavailable(file)
}

func (d *Driver) unavailable(file string) error {
	return service.NewError(service.ErrBackendUnavailable, file,
		fmt.Errorf("no compose command available (tried %s)", strings.Join(d.commands, ", ")))
}

func splitCommand(command string, extra []string) (string, []string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, false
	}
	args := make([]string, 0, len(fields)-1+len(extra))
	args = append(args, fields[1:]...)
	args = append(args, extra...)
	return fields[0], args, true
}
