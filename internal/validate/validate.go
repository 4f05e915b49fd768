// Package validate checks that the tools tickle drives are present on the host.
package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/trly/tickle/internal/execx"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// Validator provides system requirements validation with dependency injection.
type Validator struct {
	logger   log.Logger
	runner   execx.Runner
	osGetter func() string // For testing, defaults to runtime.GOOS
}

// NewValidator creates a new Validator with the provided logger and command runner.
func NewValidator(logger log.Logger, runner execx.Runner) *Validator {
	return &Validator{
		logger:   logger,
		runner:   runner,
		osGetter: func() string { return runtime.GOOS },
	}
}

// WithOSGetter sets a custom OS getter for testing.
func (v *Validator) WithOSGetter(osGetter func() string) *Validator {
	v.osGetter = osGetter
	return v
}

// SystemRequirements checks that systemd is available to manage units.
// Failures are reported as ErrBackendUnavailable.
func (v *Validator) SystemRequirements(ctx context.Context) error {
	goos := v.osGetter()
	if goos != "linux" {
		return service.NewError(service.ErrBackendUnavailable, "systemd",
			fmt.Errorf("unsupported platform: %s (units require Linux with systemd)", goos))
	}

	v.logger.Debug("Validating systemd availability")

	output, err := v.runner.CombinedOutput(ctx, "systemctl", "--version")
	if err != nil {
		return service.NewError(service.ErrBackendUnavailable, "systemd", fmt.Errorf("systemctl not found: %w", err))
	}
	if !strings.Contains(string(output), "systemd") {
		return service.NewError(service.ErrBackendUnavailable, "systemd", errors.New("systemd not properly installed"))
	}

	return nil
}

// ComposeRequirements returns the first of commands whose "version"
// subcommand runs successfully.
func (v *Validator) ComposeRequirements(ctx context.Context, commands []string) (string, error) {
	for _, command := range commands {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			continue
		}

		v.logger.Debug("Validating compose command availability", "command", command)
		args := append(fields[1:], "version")
		if _, err := v.runner.CombinedOutput(ctx, fields[0], args...); err != nil {
			v.logger.Debug("Compose command unavailable", "command", command, "error", err)
			continue
		}
		return command, nil
	}

	return "", service.NewError(service.ErrBackendUnavailable, "compose",
		fmt.Errorf("none of %q is available", commands))
}

// HistoryWritable checks that dir exists, or can be created, and accepts new files.
func (v *Validator) HistoryWritable(dir string) error {
	if dir == "" {
		return errors.New("history directory is empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("cannot create history directory: %w", err)
	}

	probe, err := os.CreateTemp(dir, ".tickle-probe-*")
	if err != nil {
		return fmt.Errorf("history directory is not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		v.logger.Debug("Failed to cleanup probe file", "file", name, "error", err)
	}

	return nil
}
