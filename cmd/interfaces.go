package cmd

import (
	"context"

	"github.com/trly/tickle/internal/compose"
	"github.com/trly/tickle/internal/history"
	"github.com/trly/tickle/internal/service"
)

// SystemValidator provides system validation capabilities for commands.
type SystemValidator interface {
	SystemRequirements(ctx context.Context) error
	ComposeRequirements(ctx context.Context, commands []string) (string, error)
	HistoryWritable(dir string) error
}

// TargetResolver turns the optional service argument into a target.
type TargetResolver interface {
	Resolve(name, dir string) (service.Target, error)
}

// UnitClassifier reports the state of a unit and how to restart it.
type UnitClassifier interface {
	Classify(ctx context.Context, unit string) (service.State, service.Strategy, error)
}

// ComposeInspector checks that a compose file can be loaded.
type ComposeInspector interface {
	Inspect(ctx context.Context, file string) (*compose.Project, error)
}

// OperationExecutor carries out operations on targets.
type OperationExecutor interface {
	Execute(ctx context.Context, target service.Target, strategy service.Strategy) service.Outcome
	Start(ctx context.Context, target service.Target) service.Outcome
	Stop(ctx context.Context, target service.Target) service.Outcome
}

// HistoryStore records and reads back the audit log.
type HistoryStore interface {
	Record(outcome service.Outcome) error
	Read(limit int) ([]history.Entry, error)
	Clear() error
	Path() string
}

// LogFollower streams the logs of a target until interrupted.
type LogFollower interface {
	Follow(ctx context.Context, target service.Target) error
}
