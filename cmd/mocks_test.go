package cmd

import (
	"context"
	"testing"

	"github.com/trly/tickle/internal/compose"
	"github.com/trly/tickle/internal/config"
	"github.com/trly/tickle/internal/history"
	"github.com/trly/tickle/internal/lifecycle"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
	"github.com/trly/tickle/internal/systemd"
	"github.com/trly/tickle/internal/target"
	"github.com/trly/tickle/internal/testutil"
	"github.com/trly/tickle/internal/testutil/fakerunner"
)

// MockValidator implements SystemValidator for testing.
type MockValidator struct {
	SystemRequirementsFunc  func(context.Context) error
	ComposeRequirementsFunc func(context.Context, []string) (string, error)
	HistoryWritableFunc     func(string) error
}

func (m *MockValidator) SystemRequirements(ctx context.Context) error {
	if m.SystemRequirementsFunc != nil {
		return m.SystemRequirementsFunc(ctx)
	}
	return nil
}

func (m *MockValidator) ComposeRequirements(ctx context.Context, commands []string) (string, error) {
	if m.ComposeRequirementsFunc != nil {
		return m.ComposeRequirementsFunc(ctx, commands)
	}
	if len(commands) == 0 {
		return "", nil
	}
	return commands[0], nil
}

func (m *MockValidator) HistoryWritable(dir string) error {
	if m.HistoryWritableFunc != nil {
		return m.HistoryWritableFunc(dir)
	}
	return nil
}

// MockHistory implements HistoryStore for testing.
type MockHistory struct {
	RecordFunc func(service.Outcome) error
	ReadFunc   func(int) ([]history.Entry, error)
	ClearFunc  func() error
	PathValue  string
	Recorded   []service.Outcome
}

func (m *MockHistory) Record(outcome service.Outcome) error {
	m.Recorded = append(m.Recorded, outcome)
	if m.RecordFunc != nil {
		return m.RecordFunc(outcome)
	}
	return nil
}

func (m *MockHistory) Read(limit int) ([]history.Entry, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(limit)
	}
	return nil, nil
}

func (m *MockHistory) Clear() error {
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}

func (m *MockHistory) Path() string {
	return m.PathValue
}

// AppBuilder provides a fluent interface for building test Apps. Unless
// overridden, the App runs the real resolver, classifier, executor and
// history store against a FakeBackend, a fake runner and a temporary
// history directory.
type AppBuilder struct {
	logger    log.Logger
	config    *config.Settings
	validator SystemValidator
	backend   *systemd.FakeBackend
	runner    *fakerunner.Runner
	history   HistoryStore
	euid      int
}

// NewAppBuilder creates a new AppBuilder with sensible defaults.
func NewAppBuilder(t *testing.T) *AppBuilder {
	provider := testutil.NewMockConfig(t)
	return &AppBuilder{
		logger:    testutil.NewTestLogger(t),
		config:    provider.GetConfig(),
		validator: &MockValidator{},
		backend:   systemd.NewFakeBackend(),
		runner:    fakerunner.New(),
	}
}

func (b *AppBuilder) WithValidator(v SystemValidator) *AppBuilder {
	b.validator = v
	return b
}

func (b *AppBuilder) WithConfig(c *config.Settings) *AppBuilder {
	b.config = c
	return b
}

func (b *AppBuilder) WithVerbose(verbose bool) *AppBuilder {
	b.config.Verbose = verbose
	return b
}

func (b *AppBuilder) WithBackend(backend *systemd.FakeBackend) *AppBuilder {
	b.backend = backend
	return b
}

func (b *AppBuilder) WithRunner(runner *fakerunner.Runner) *AppBuilder {
	b.runner = runner
	return b
}

func (b *AppBuilder) WithHistory(h HistoryStore) *AppBuilder {
	b.history = h
	return b
}

func (b *AppBuilder) WithEUID(euid int) *AppBuilder {
	b.euid = euid
	return b
}

func (b *AppBuilder) Build(t *testing.T) *App {
	t.Helper()

	provider := config.NewDefaultConfigProvider()
	provider.SetConfig(b.config)

	driver := compose.NewDriver(b.runner, b.runner, b.config.ComposeCommands, b.logger)
	euid := b.euid

	store := b.history
	if store == nil {
		store = history.NewFileStore(b.config.HistoryPath(), b.logger)
	}

	return &App{
		Logger:         b.logger,
		Config:         b.config,
		ConfigProvider: provider,
		Runner:         b.runner,
		Validator:      b.validator,
		Resolver:       target.NewResolver(b.logger),
		Classifier:     systemd.NewClassifier(b.backend, b.logger),
		Inspector:      compose.NewInspector(b.config.ValidateCompose, b.logger),
		Executor: lifecycle.NewExecutor(b.backend, driver, b.config.UserMode, b.logger).
			WithEUID(func() int { return euid }),
		History:  store,
		Follower: lifecycle.NewFollower(b.runner, driver, b.config.UserMode, b.logger),
	}
}
