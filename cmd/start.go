package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/trly/tickle/internal/service"
)

// StartCommand represents the start command.
type StartCommand struct{}

// NewStartCommand creates a new StartCommand.
func NewStartCommand() *StartCommand {
	return &StartCommand{}
}

// getApp retrieves the App from the command context.
func (c *StartCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for start operations.
func (c *StartCommand) GetCobraCommand() *cobra.Command {
	var opts OperationOptions

	startCmd := &cobra.Command{
		Use:   "start [service]",
		Short: "Start a service or compose stack",
		Long: `Start a systemd unit, or bring the compose stack in the current directory up
detached when no service is named.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := c.getApp(cmd)
			deps := buildOperationDeps(app)
			return c.Run(cmd.Context(), app, opts, deps, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	startCmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Follow logs after starting")

	return startCmd
}

// Run executes the start command with injected dependencies.
func (c *StartCommand) Run(ctx context.Context, app *App, opts OperationOptions, deps OperationDeps, args []string) error {
	return runOperation(ctx, app, service.OpStart, opts, deps, args)
}
