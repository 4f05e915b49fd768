package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/tickle/internal/config"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// isolateConfig keeps the root command from reading real configuration.
func isolateConfig(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	return home
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand().GetCobraCommand()

	for _, name := range []string{"config", "verbose", "user", "history-dir", "backend"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
	assert.Equal(t, "u", cmd.PersistentFlags().Lookup("user").Shorthand)
	assert.Empty(t, cmd.PersistentFlags().Lookup("verbose").Shorthand)

	assert.Equal(t, "s", cmd.Flags().Lookup("stop-start").Shorthand)
	assert.Equal(t, "f", cmd.Flags().Lookup("follow").Shorthand)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand().GetCobraCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"start", "stop", "history", "doctor", "config", "update", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"-v"})
	require.NoError(t, err)
	assert.Contains(t, output, "tickle version "+Version)
}

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})
	require.NoError(t, err)
	assert.Contains(t, output, "tickle [service]")
	assert.Contains(t, output, "--stop-start")
	assert.Contains(t, output, "history")
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	app := NewAppBuilder(t).Build(t)

	_, err := runRoot(t, app, "nginx", "redis")
	require.Error(t, err)
}

func TestRootCommand_SetupAppliesFlags(t *testing.T) {
	isolateConfig(t)
	historyDir := filepath.Join(t.TempDir(), "audit")

	var got *App
	root := &RootCommand{newApp: func(logger log.Logger, provider config.Provider) (*App, error) {
		app, err := NewApp(logger, provider)
		got = app
		return app, err
	}}
	cmd := root.GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"config", "--history-dir", historyDir, "--user", "--backend", "systemctl"})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, historyDir, got.Config.HistoryDir)
	assert.True(t, got.Config.UserMode)
	assert.Equal(t, filepath.Join(historyDir, config.DefaultHistoryFile), got.History.Path())
	assert.Contains(t, output, "historyDir: "+historyDir)
	assert.Contains(t, output, "userMode: true")
}

func TestRootCommand_SetupReadsConfigFile(t *testing.T) {
	home := isolateConfig(t)
	configFile := filepath.Join(home, "tickle.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("backend: dbus\nvalidateCompose: false\n"), 0o600))

	var got *App
	root := &RootCommand{newApp: func(logger log.Logger, provider config.Provider) (*App, error) {
		got = NewAppBuilder(t).WithConfig(provider.GetConfig()).Build(t)
		return got, nil
	}}
	cmd := root.GetCobraCommand()

	_, err := ExecuteCommandWithCapture(t, cmd, []string{"config", "--config", configFile})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, config.BackendDBus, got.Config.Backend)
	assert.False(t, got.Config.ValidateCompose)
}

func TestRootCommand_SetupRejectsMissingConfigFile(t *testing.T) {
	home := isolateConfig(t)
	cmd := NewRootCommand().GetCobraCommand()

	_, err := ExecuteCommandWithCapture(t, cmd, []string{"config", "--config", filepath.Join(home, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestRootCommand_SetupRejectsInvalidBackend(t *testing.T) {
	isolateConfig(t)
	cmd := NewRootCommand().GetCobraCommand()

	_, err := ExecuteCommandWithCapture(t, cmd, []string{"config", "--backend", "upstart"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestRootCommand_SetupKeepsExistingApp(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	root := &RootCommand{newApp: func(log.Logger, config.Provider) (*App, error) {
		return nil, errors.New("must not be called")
	}}
	cmd := root.GetCobraCommand()
	SetupCommandContext(cmd, app)

	_, err := ExecuteCommandWithCapture(t, cmd, []string{"config"})
	require.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"no target", service.NewError(service.ErrNoTargetFound, "", nil), 2},
		{"unit not found", service.NewError(service.ErrUnitNotFound, "nginx", nil), 3},
		{"backend unavailable", service.NewError(service.ErrBackendUnavailable, "nginx", nil), 4},
		{"compose unreadable", service.NewError(service.ErrComposeFileUnreadable, "compose.yml", nil), 5},
		{"sub-step", service.NewStepError(service.StepStop, "nginx", nil), 1},
		{"wrapped", fmt.Errorf("outer: %w", service.NewError(service.ErrUnitNotFound, "nginx", nil)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
