// Package cmd provides the command line interface for tickle
package cmd

import (
	"fmt"

	"github.com/trly/tickle/internal/compose"
	"github.com/trly/tickle/internal/config"
	"github.com/trly/tickle/internal/execx"
	"github.com/trly/tickle/internal/history"
	"github.com/trly/tickle/internal/lifecycle"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/systemd"
	"github.com/trly/tickle/internal/target"
	"github.com/trly/tickle/internal/validate"
)

type contextKey string

// appContextKey is the key under which the App is stored in the command context.
const appContextKey contextKey = "app"

// App holds the application dependencies for command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Runner         execx.Runner
	Validator      SystemValidator
	Resolver       TargetResolver
	Classifier     UnitClassifier
	Inspector      ComposeInspector
	Executor       OperationExecutor
	History        HistoryStore
	Follower       LogFollower
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(logger log.Logger, configProv config.Provider) (*App, error) {
	cfg := configProv.GetConfig()
	runner := execx.NewRealRunner()

	backend, err := systemd.NewBackend(cfg, runner, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create service manager backend: %w", err)
	}
	driver := compose.NewDriver(runner, runner, cfg.ComposeCommands, logger)

	return &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: configProv,
		Runner:         runner,
		Validator:      validate.NewValidator(logger, runner),
		Resolver:       target.NewResolver(logger),
		Classifier:     systemd.NewClassifier(backend, logger),
		Inspector:      compose.NewInspector(cfg.ValidateCompose, logger),
		Executor:       lifecycle.NewExecutor(backend, driver, cfg.UserMode, logger),
		History:        history.NewFileStore(cfg.HistoryPath(), logger),
		Follower:       lifecycle.NewFollower(runner, driver, cfg.UserMode, logger),
	}, nil
}
