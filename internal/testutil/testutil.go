// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/trly/tickle/internal/config"
	"github.com/trly/tickle/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := &testHandler{t: t, opts: opts}
	return log.NewSlogAdapter(slog.New(handler))
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithHistoryDir sets a custom history directory.
func WithHistoryDir(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.HistoryDir = dir
	}
}

// WithVerbose sets verbose logging.
func WithVerbose(verbose bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Verbose = verbose
	}
}

// WithUserMode sets user mode.
func WithUserMode(userMode bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.UserMode = userMode
	}
}

// WithBackend sets the service manager backend.
func WithBackend(backend string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Backend = backend
	}
}

// NewMockConfig creates a config provider for testing with optional customizations.
// The history directory defaults to a per-test temporary directory.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	cfg := config.Defaults()
	cfg.HistoryDir = t.TempDir()
	cfg.Verbose = true

	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t     testing.TB
	opts  *slog.HandlerOptions
	attrs []slog.Attr
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	args := make([]any, 0, record.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		args = append(args, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		args = append(args, a)
		return true
	})
	h.t.Logf("[%s] %s %v", record.Level.String(), record.Message, args)
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts, attrs: h.attrs}
}
