package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/trly/tickle/internal/config"
)

func TestConfigCommand_Run(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	out := &captured{}
	deps := ConfigDeps{CommonDeps: NewRootDeps(app)}
	deps.Stdout = out

	require.NoError(t, NewConfigCommand().Run(context.Background(), app, deps))

	var got config.Settings
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, app.Config.HistoryDir, got.HistoryDir)
	assert.Equal(t, config.BackendSystemctl, got.Backend)
	assert.Equal(t, config.DefaultComposeCommands, got.ComposeCommands)
}

func TestConfigCommand_GetCobraCommand(t *testing.T) {
	cmd := NewConfigCommand().GetCobraCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
