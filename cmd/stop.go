package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/trly/tickle/internal/service"
)

// StopCommand represents the stop command.
type StopCommand struct{}

// NewStopCommand creates a new StopCommand.
func NewStopCommand() *StopCommand {
	return &StopCommand{}
}

// getApp retrieves the App from the command context.
func (c *StopCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for stop operations.
func (c *StopCommand) GetCobraCommand() *cobra.Command {
	var opts OperationOptions

	stopCmd := &cobra.Command{
		Use:   "stop [service]",
		Short: "Stop a service or compose stack",
		Long: `Stop a systemd unit, or bring the compose stack in the current directory down
when no service is named.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := c.getApp(cmd)
			deps := buildOperationDeps(app)
			return c.Run(cmd.Context(), app, opts, deps, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return stopCmd
}

// Run executes the stop command with injected dependencies.
func (c *StopCommand) Run(ctx context.Context, app *App, opts OperationOptions, deps OperationDeps, args []string) error {
	return runOperation(ctx, app, service.OpStop, opts, deps, args)
}
