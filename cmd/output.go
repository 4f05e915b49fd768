// Package cmd provides output formatting utilities for tickle CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/trly/tickle/internal/service"
)

// Output formats accepted by --output.
var allowedOutputFormats = []string{"text", "json", "yaml"}

var titleCaser = cases.Title(language.English)

// PrintOutput formats and writes data according to the specified output format.
func PrintOutput(w io.Writer, format string, data interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		return printJSON(w, data)
	case "yaml", "yml":
		return printYAML(w, data)
	case "text":
		return printText(w, data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// validateOutputFormat checks format against allowedOutputFormats.
func validateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "text", "json", "yaml", "yml":
		return nil
	}
	return fmt.Errorf("invalid output format: %s, allowed formats are: %v", format, allowedOutputFormats)
}

// printJSON outputs data as JSON.
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML outputs data as YAML.
func printYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer func() {
		_ = encoder.Close()
	}()
	return encoder.Encode(data)
}

// printText is a fallback for callers without their own text layout.
func printText(w io.Writer, data interface{}) error {
	_, err := fmt.Fprintf(w, "%+v\n", data)
	return err
}

// stateName renders a state for people, e.g. "Active".
func stateName(s service.State) string {
	return titleCaser.String(s.String())
}

func operationVerb(op service.Operation) string {
	switch op {
	case service.OpStart:
		return "Started"
	case service.OpStop:
		return "Stopped"
	case service.OpTickle:
		return "Restarted"
	}
	return "Restarted"
}

// printOutcome writes the one-line result of an operation.
func printOutcome(w io.Writer, out service.Outcome, elapsed time.Duration) {
	label := out.Target.Label()
	took := elapsed.Round(10 * time.Millisecond)

	detail := fmt.Sprintf("%s, %s", out.Strategy, took)
	if out.Strategy == service.StrategyNone {
		detail = took.String()
	}

	if out.Succeeded {
		ok := color.New(color.FgGreen).SprintFunc()
		if out.Target.Kind == service.KindUnit {
			_, _ = fmt.Fprintf(w, "%s %s %s: %s -> %s (%s)\n", ok("✓"), operationVerb(out.Operation), label,
				stateName(out.InitialState), stateName(out.FinalState), detail)
			return
		}
		_, _ = fmt.Fprintf(w, "%s %s %s (%s)\n", ok("✓"), operationVerb(out.Operation), label, detail)
		return
	}

	fail := color.New(color.FgRed).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %s %s failed: %v\n", fail("✗"), out.Operation, label, out.Err)
	if out.Target.Kind == service.KindUnit {
		_, _ = fmt.Fprintf(w, "  state: %s -> %s\n", stateName(out.InitialState), stateName(out.FinalState))
	}
}

// printWarning writes a non-fatal message.
func printWarning(w io.Writer, msg string) {
	warn := color.New(color.FgYellow).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %s\n", warn("warning:"), msg)
}

// printError writes the error that ended the command.
func printError(w io.Writer, err error) {
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %v\n", fail("error:"), err)
}

// CheckResultStructured represents a health check result in structured format.
type CheckResultStructured struct {
	Name        string   `json:"name" yaml:"name"`
	Status      string   `json:"status" yaml:"status"`
	Message     string   `json:"message,omitempty" yaml:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// HealthCheckOutput represents the output of the doctor command.
type HealthCheckOutput struct {
	Overall string                  `json:"overall" yaml:"overall"`
	Checks  []CheckResultStructured `json:"checks" yaml:"checks"`
	Summary map[string]int          `json:"summary" yaml:"summary"`
}
