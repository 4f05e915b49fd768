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

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// UpdateDeps holds update dependencies.
type UpdateDeps struct {
	CommonDeps
	DetectLatest   ReleaseDetector
	ExecutablePath func() (string, error)
	UpdateTo       func(ctx context.Context, assetURL, assetName, path string) error
}

// UpdateCommand represents the update command.
type UpdateCommand struct{}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand() *UpdateCommand {
	return &UpdateCommand{}
}

// getApp retrieves the App from the command context.
func (c *UpdateCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for updating the binary.
func (c *UpdateCommand) GetCobraCommand() *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update tickle to the latest version",
		Long:  `Update tickle to the latest version from GitHub releases.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return updateCmd
}

// buildDeps creates production dependencies for the update command.
func (c *UpdateCommand) buildDeps(app *App) UpdateDeps {
	return UpdateDeps{
		CommonDeps:     NewRootDeps(app),
		DetectLatest:   detectLatest,
		ExecutablePath: selfupdate.ExecutablePath,
		UpdateTo:       selfupdate.UpdateTo,
	}
}

// Run replaces the running binary with the latest release when it is newer.
func (c *UpdateCommand) Run(ctx context.Context, deps UpdateDeps) error {
	out := deps.Stdout
	_, _ = fmt.Fprintf(out, "Current version: %s\n", Version)
	_, _ = fmt.Fprintln(out, "Checking for updates...")

	latest, found, err := deps.DetectLatest(ctx, releaseSlug)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !found {
		_, _ = fmt.Fprintln(out, "No release found")
		return nil
	}

	if latest.LessOrEqual(Version) {
		_, _ = fmt.Fprintln(out, "You are already running the latest version.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Update available! New version: %s\n", latest.Version())
	_, _ = fmt.Fprintln(out, "Downloading and applying update...")

	exe, err := deps.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := deps.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Update completed successfully! Please restart tickle to use the new version.")
	return nil
}
