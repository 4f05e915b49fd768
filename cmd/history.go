package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/SerhiiCho/timeago/v3"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/trly/tickle/internal/history"
)

// HistoryOptions holds history command options.
type HistoryOptions struct {
	Number int
	Output string
}

// HistoryDeps holds history dependencies.
type HistoryDeps struct {
	CommonDeps
}

// HistoryCommand represents the history command.
type HistoryCommand struct{}

// NewHistoryCommand creates a new HistoryCommand.
func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

// getApp retrieves the App from the command context.
func (c *HistoryCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for history operations.
func (c *HistoryCommand) GetCobraCommand() *cobra.Command {
	opts := HistoryOptions{Number: history.All, Output: "text"}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded operations",
		Long: `Show the operations recorded in the history log, oldest first.

Use --number to show only the most recent entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	historyCmd.Flags().IntVarP(&opts.Number, "number", "n", history.All, "Number of most recent entries to show (all by default)")
	historyCmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text, json, yaml)")
	_ = historyCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return allowedOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	historyCmd.AddCommand(c.clearCommand())

	return historyCmd
}

func (c *HistoryCommand) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Clear(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// buildDeps creates production dependencies for the history command.
func (c *HistoryCommand) buildDeps(app *App) HistoryDeps {
	return HistoryDeps{CommonDeps: NewRootDeps(app)}
}

// Run executes the history command with injected dependencies.
func (c *HistoryCommand) Run(_ context.Context, app *App, opts HistoryOptions, deps HistoryDeps) error {
	if err := validateOutputFormat(opts.Output); err != nil {
		return err
	}

	limit := opts.Number
	if limit < 0 {
		limit = history.All
	}

	entries, err := app.History.Read(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	deps.Logger.Debug("Read history", "path", app.History.Path(), "entries", len(entries))

	if strings.ToLower(opts.Output) != "text" {
		if entries == nil {
			entries = []history.Entry{}
		}
		return PrintOutput(deps.Stdout, opts.Output, entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No history recorded.")
		return nil
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.New("Time", "Command", "Target", "Status", "Age")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt).WithWriter(deps.Stdout)

	for _, e := range entries {
		age, err := timeago.Parse(e.Timestamp)
		if err != nil {
			deps.Logger.Debug("Failed to format entry age", "timestamp", e.Timestamp, "error", err)
			age = "-"
		}
		tbl.AddRow(e.Timestamp.Format(history.TimeFormat), e.Command, e.Target, e.Status.String(), age)
	}
	tbl.Print()

	return nil
}

// Clear truncates the history log.
func (c *HistoryCommand) Clear(_ context.Context, app *App, deps HistoryDeps) error {
	if err := app.History.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "History cleared: %s\n", app.History.Path())
	return nil
}
