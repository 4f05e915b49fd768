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
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// Build information set by goreleaser.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// releaseSlug is the GitHub repository releases are published to.
const releaseSlug = "trly/tickle"

// ReleaseDetector finds the latest published release.
type ReleaseDetector func(ctx context.Context, slug string) (*selfupdate.Release, bool, error)

// detectLatest looks up the latest GitHub release for slug.
func detectLatest(ctx context.Context, slug string) (*selfupdate.Release, bool, error) {
	return selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(slug))
}

// VersionDeps holds version dependencies.
type VersionDeps struct {
	CommonDeps
	DetectLatest ReleaseDetector
}

// VersionCommand represents the version command.
type VersionCommand struct{}

// NewVersionCommand creates a new VersionCommand.
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{}
}

// getApp retrieves the App from the command context.
func (c *VersionCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for displaying version information.
func (c *VersionCommand) GetCobraCommand() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for tickle and check for a newer release.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			c.Run(cmd.Context(), deps)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return versionCmd
}

// buildDeps creates production dependencies for the version command.
func (c *VersionCommand) buildDeps(app *App) VersionDeps {
	return VersionDeps{
		CommonDeps:   NewRootDeps(app),
		DetectLatest: detectLatest,
	}
}

// Run prints build information followed by the update check result.
func (c *VersionCommand) Run(ctx context.Context, deps VersionDeps) {
	out := deps.Stdout
	_, _ = fmt.Fprintf(out, "tickle version %s\n", Version)
	_, _ = fmt.Fprintf(out, "  commit: %s\n", Commit)
	_, _ = fmt.Fprintf(out, "  built: %s\n", Date)
	_, _ = fmt.Fprintf(out, "  go: %s\n", runtime.Version())

	c.checkForUpdates(ctx, deps)
}

// checkForUpdates checks if a newer version is available and prints a message if so.
func (c *VersionCommand) checkForUpdates(ctx context.Context, deps VersionDeps) {
	out := deps.Stdout

	if Version == "dev" {
		_, _ = fmt.Fprintln(out, "\nSkipping update check for development build.")
		return
	}

	_, _ = fmt.Fprintln(out, "\nChecking for updates...")

	latest, found, err := deps.DetectLatest(ctx, releaseSlug)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Failed to check for updates: %v\n", err)
		return
	}

	if !found {
		_, _ = fmt.Fprintln(out, "No release found")
		return
	}

	if latest.LessOrEqual(Version) {
		_, _ = fmt.Fprintln(out, "You are running the latest version.")
		return
	}

	_, _ = fmt.Fprintf(out, "🚀 Update available! New version: %s\n", latest.Version())
	_, _ = fmt.Fprintln(out, "Run 'tickle update' to update to the latest version.")
}
