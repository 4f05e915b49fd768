// Package cmd provides the command line interface for tickle
/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DoctorOptions holds doctor command options.
type DoctorOptions struct {
	Output string
}

// DoctorDeps holds doctor dependencies.
type DoctorDeps struct {
	CommonDeps
	ViperConfigFile func() string
	GetOS           func() string
}

// DoctorCommand represents the doctor command for tickle CLI.
type DoctorCommand struct{}

// NewDoctorCommand creates a new DoctorCommand.
func NewDoctorCommand() *DoctorCommand {
	return &DoctorCommand{}
}

// getApp retrieves the App from the command context.
func (c *DoctorCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// CheckResult represents the result of a diagnostic check.
type CheckResult struct {
	Name        string
	Passed      bool
	Message     string
	Suggestions []string
}

// GetCobraCommand returns the cobra command for doctor operations.
func (c *DoctorCommand) GetCobraCommand() *cobra.Command {
	opts := DoctorOptions{Output: "text"}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and configuration",
		Long: `Check system health and configuration for tickle.

The doctor command checks that systemctl and a compose CLI are available,
that the configuration file can be read and that the history log can be
written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	doctorCmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text, json, yaml)")

	return doctorCmd
}

// buildDeps creates production dependencies for the doctor command.
func (c *DoctorCommand) buildDeps(app *App) DoctorDeps {
	return DoctorDeps{
		CommonDeps:      NewRootDeps(app),
		ViperConfigFile: func() string { return viper.GetViper().ConfigFileUsed() },
		GetOS:           func() string { return runtime.GOOS },
	}
}

// Run executes the doctor command with injected dependencies.
func (c *DoctorCommand) Run(ctx context.Context, app *App, opts DoctorOptions, deps DoctorDeps) error {
	if err := validateOutputFormat(opts.Output); err != nil {
		return err
	}

	var results []CheckResult
	results = append(results, c.checkSystemRequirements(ctx, app, deps))
	results = append(results, c.checkComposeCLI(ctx, app))
	results = append(results, c.checkConfiguration(deps))
	results = append(results, c.checkHistory(app))

	failureCount := 0
	for _, result := range results {
		if !result.Passed {
			failureCount++
		}
	}

	if strings.ToLower(opts.Output) != "text" {
		if err := c.outputStructuredResults(deps, opts.Output, results, failureCount); err != nil {
			return err
		}
		if failureCount > 0 {
			return fmt.Errorf("doctor found %d issues", failureCount)
		}
		return nil
	}

	if app.Config.Verbose {
		c.displayDetailedResults(deps, results)
	} else {
		c.displaySummaryResults(deps, results)
	}

	if failureCount > 0 {
		if !app.Config.Verbose {
			_, _ = fmt.Fprintf(deps.Stdout, "\n%d checks failed. Run with --verbose for details.\n", failureCount)
		}
		return fmt.Errorf("doctor found %d issues", failureCount)
	}
	_, _ = fmt.Fprintln(deps.Stdout, "✓ All checks passed")
	return nil
}

// checkSystemRequirements validates the service manager is reachable.
func (c *DoctorCommand) checkSystemRequirements(ctx context.Context, app *App, deps DoctorDeps) CheckResult {
	if err := app.Validator.SystemRequirements(ctx); err != nil {
		suggestions := []string{
			"Ensure systemctl is installed and in your PATH",
			"Ensure the system was booted with systemd",
		}
		if deps.GetOS() != "linux" {
			suggestions = []string{"tickle requires Linux with systemd for unit management"}
		}
		return CheckResult{
			Name:        "System Requirements",
			Message:     err.Error(),
			Suggestions: suggestions,
		}
	}

	return CheckResult{
		Name:    "System Requirements",
		Passed:  true,
		Message: fmt.Sprintf("systemd is available (%s backend)", app.Config.Backend),
	}
}

// checkComposeCLI validates at least one compose command works.
func (c *DoctorCommand) checkComposeCLI(ctx context.Context, app *App) CheckResult {
	command, err := app.Validator.ComposeRequirements(ctx, app.Config.ComposeCommands)
	if err != nil {
		return CheckResult{
			Name:    "Compose CLI",
			Message: err.Error(),
			Suggestions: []string{
				"Install the docker compose plugin or docker-compose",
				"Set composeCommands in the configuration file to the CLI you use",
			},
		}
	}

	return CheckResult{
		Name:    "Compose CLI",
		Passed:  true,
		Message: fmt.Sprintf("using %q", command),
	}
}

// checkConfiguration reports where configuration was loaded from.
func (c *DoctorCommand) checkConfiguration(deps DoctorDeps) CheckResult {
	configFile := deps.ViperConfigFile()
	if configFile == "" {
		return CheckResult{
			Name:    "Configuration File",
			Passed:  true,
			Message: "No configuration file found, using defaults",
		}
	}

	if _, err := deps.FileSystem.Stat(configFile); err != nil {
		return CheckResult{
			Name:    "Configuration File",
			Message: fmt.Sprintf("Configuration file not accessible: %v", err),
			Suggestions: []string{
				"Check file permissions on " + configFile,
				"Verify the file path passed with --config",
			},
		}
	}

	return CheckResult{
		Name:    "Configuration File",
		Passed:  true,
		Message: fmt.Sprintf("Configuration loaded from %s", configFile),
	}
}

// checkHistory validates the history log directory accepts writes.
func (c *DoctorCommand) checkHistory(app *App) CheckResult {
	dir := filepath.Dir(app.History.Path())
	if err := app.Validator.HistoryWritable(dir); err != nil {
		return CheckResult{
			Name:    "History Directory",
			Message: err.Error(),
			Suggestions: []string{
				fmt.Sprintf("Create directory: mkdir -p %s", dir),
				"Choose another location with --history-dir",
			},
		}
	}

	return CheckResult{
		Name:    "History Directory",
		Passed:  true,
		Message: fmt.Sprintf("History log writable at %s", app.History.Path()),
	}
}

// displaySummaryResults shows a brief summary of check results.
func (c *DoctorCommand) displaySummaryResults(deps DoctorDeps, results []CheckResult) {
	var failed []CheckResult
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}

	if len(failed) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Issues found:")
		for _, result := range failed {
			_, _ = fmt.Fprintf(deps.Stdout, "✗ %s: %s\n", result.Name, result.Message)
		}
	}
}

// displayDetailedResults shows detailed information about all checks.
func (c *DoctorCommand) displayDetailedResults(deps DoctorDeps, results []CheckResult) {
	_, _ = fmt.Fprintln(deps.Stdout, "System Health Check Results:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 40))

	for _, result := range results {
		if result.Passed {
			_, _ = fmt.Fprintf(deps.Stdout, "✓ %s: %s\n", result.Name, result.Message)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "✗ %s: %s\n", result.Name, result.Message)
			if len(result.Suggestions) > 0 {
				_, _ = fmt.Fprintln(deps.Stdout, "  Suggestions:")
				for _, suggestion := range result.Suggestions {
					_, _ = fmt.Fprintf(deps.Stdout, "    - %s\n", suggestion)
				}
			}
		}
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// outputStructuredResults outputs health check results in structured format (JSON/YAML).
func (c *DoctorCommand) outputStructuredResults(deps DoctorDeps, format string, results []CheckResult, failureCount int) error {
	checks := make([]CheckResultStructured, 0, len(results))
	passedCount := 0

	for _, result := range results {
		status := "failed"
		if result.Passed {
			status = "passed"
			passedCount++
		}

		checks = append(checks, CheckResultStructured{
			Name:        result.Name,
			Status:      status,
			Message:     result.Message,
			Suggestions: result.Suggestions,
		})
	}

	overall := "passed"
	if failureCount > 0 {
		overall = "failed"
	}

	return PrintOutput(deps.Stdout, format, HealthCheckOutput{
		Overall: overall,
		Checks:  checks,
		Summary: map[string]int{
			"total":  len(results),
			"passed": passedCount,
			"failed": failureCount,
		},
	})
}
