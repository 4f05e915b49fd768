package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/trly/tickle/internal/service"
)

// TickleCommand restarts a unit or compose stack. It is the root command's
// default action.
type TickleCommand struct{}

// NewTickleCommand creates a new TickleCommand.
func NewTickleCommand() *TickleCommand {
	return &TickleCommand{}
}

// getApp retrieves the App from the command context.
func (c *TickleCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// Bind attaches the restart flags and action to cmd.
func (c *TickleCommand) Bind(cmd *cobra.Command) {
	var opts OperationOptions

	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app := c.getApp(cmd)
		deps := buildOperationDeps(app)
		return c.Run(cmd.Context(), app, opts, deps, args)
	}

	cmd.Flags().BoolVarP(&opts.StopStart, "stop-start", "s", false, "Force stop then start instead of restart")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Follow logs after restarting")
}

// Run executes the restart with injected dependencies.
func (c *TickleCommand) Run(ctx context.Context, app *App, opts OperationOptions, deps OperationDeps, args []string) error {
	return runOperation(ctx, app, service.OpTickle, opts, deps, args)
}
