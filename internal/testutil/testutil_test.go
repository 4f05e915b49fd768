package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trly/tickle/internal/config"
)

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	assert.NotNil(t, logger)

	// Test that we can call logger methods without panic
	logger.Debug("test debug message", "key", "value")
	logger.Info("test info message")
	logger.Warn("test warn message")
	logger.Error("test error message")
}

func TestNewMockConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		provider := NewMockConfig(t)
		require.NotNil(t, provider)

		cfg := provider.GetConfig()
		require.NotNil(t, cfg)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, config.DefaultBackend, cfg.Backend)
		assert.DirExists(t, cfg.HistoryDir)
	})

	t.Run("with options", func(t *testing.T) {
		provider := NewMockConfig(t,
			WithHistoryDir("/custom/path"),
			WithVerbose(false),
			WithUserMode(true),
			WithBackend(config.BackendDBus))

		cfg := provider.GetConfig()
		assert.Equal(t, "/custom/path", cfg.HistoryDir)
		assert.False(t, cfg.Verbose)
		assert.True(t, cfg.UserMode)
		assert.Equal(t, config.BackendDBus, cfg.Backend)
	})
}
