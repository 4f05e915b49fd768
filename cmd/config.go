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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigDeps holds config dependencies.
type ConfigDeps struct {
	CommonDeps
}

// ConfigCommand represents the config command for tickle CLI.
type ConfigCommand struct{}

// NewConfigCommand creates a new ConfigCommand.
func NewConfigCommand() *ConfigCommand {
	return &ConfigCommand{}
}

// getApp retrieves the App from the command context.
func (c *ConfigCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for config operations.
func (c *ConfigCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Display current configuration",
		Long:  "Display the current configuration including defaults and overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			return c.Run(cmd.Context(), app, ConfigDeps{CommonDeps: NewRootDeps(app)})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// Run writes the effective configuration as YAML.
func (c *ConfigCommand) Run(_ context.Context, app *App, deps ConfigDeps) error {
	output, err := yaml.Marshal(app.Config)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}
	_, _ = fmt.Fprint(deps.Stdout, string(output))
	return nil
}
