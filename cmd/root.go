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
	"os"

	"github.com/spf13/cobra"

	"github.com/trly/tickle/internal/config"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	UserMode   bool
	HistoryDir string
	Backend    string
}

// RootCommand represents the root command for tickle CLI.
type RootCommand struct {
	newApp func(log.Logger, config.Provider) (*App, error)
}

// NewRootCommand creates a new RootCommand.
func NewRootCommand() *RootCommand {
	return &RootCommand{newApp: NewApp}
}

// GetCobraCommand returns the cobra root command for tickle CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	var opts RootOptions

	rootCmd := &cobra.Command{
		Use:   "tickle [service]",
		Short: "Restart a systemd unit or the compose stack in the current directory",
		Long: `Tickle restarts a systemd unit, choosing between an atomic restart and a
stop followed by a start based on the unit's type and capabilities.

Without a service name tickle looks for a compose file in the current directory
and brings the stack down and up again. Every attempt is recorded in the
history log.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("tickle version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.UserMode, "user", "u", false, "Manage units of the user service manager")
	rootCmd.PersistentFlags().StringVar(&opts.HistoryDir, "history-dir", "", "Directory holding the history log")
	rootCmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "Service manager backend (systemctl, dbus)")

	NewTickleCommand().Bind(rootCmd)

	rootCmd.AddCommand(
		NewStartCommand().GetCobraCommand(),
		NewStopCommand().GetCobraCommand(),
		NewHistoryCommand().GetCobraCommand(),
		NewDoctorCommand().GetCobraCommand(),
		NewConfigCommand().GetCobraCommand(),
		NewUpdateCommand().GetCobraCommand(),
		NewVersionCommand().GetCobraCommand(),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and stores the App in
// the command context. An App already present in the context is kept.
func (c *RootCommand) setup(cmd *cobra.Command, opts RootOptions) error {
	if _, ok := cmd.Context().Value(appContextKey).(*App); ok {
		return nil
	}

	provider := config.NewDefaultConfigProvider()
	if opts.ConfigFile != "" {
		provider.SetConfigFilePath(opts.ConfigFile)
	}
	cfg, err := provider.InitConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if flags.Changed("user") {
		cfg.UserMode = opts.UserMode
	}
	if flags.Changed("history-dir") {
		cfg.HistoryDir = opts.HistoryDir
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.Backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewLogger(cfg.Verbose)
	logger.Debug("Configuration loaded", "historyDir", cfg.HistoryDir, "backend", cfg.Backend, "userMode", cfg.UserMode)

	app, err := c.newApp(logger, provider)
	if err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), appContextKey, app))
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCommand().GetCobraCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return ExitCode(err)
	}
	return 0
}

// ExitCode maps an error onto the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if kind := service.KindOf(err); kind != 0 {
		return kind.ExitCode()
	}
	return 1
}
