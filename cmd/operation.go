package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/trly/tickle/internal/service"
)

// OperationOptions holds the flags shared by tickle, start and stop.
type OperationOptions struct {
	StopStart bool
	Follow    bool
}

// OperationDeps holds operation dependencies.
type OperationDeps struct {
	CommonDeps
}

func buildOperationDeps(app *App) OperationDeps {
	return OperationDeps{CommonDeps: NewRootDeps(app)}
}

// runOperation resolves the target named by args, checks it can be acted on,
// runs op and records the outcome. Nothing is recorded when the target cannot
// be resolved, classified or inspected.
func runOperation(ctx context.Context, app *App, op service.Operation, opts OperationOptions, deps OperationDeps, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
		if err := service.ValidateUnitName(name); err != nil {
			return err
		}
	}

	dir, err := deps.FileSystem.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	target, err := app.Resolver.Resolve(name, dir)
	if err != nil {
		return err
	}

	strategy := service.StrategyNone
	switch target.Kind {
	case service.KindUnit:
		state, decided, err := app.Classifier.Classify(ctx, target.Name)
		if err != nil {
			return err
		}
		if op == service.OpTickle {
			strategy = decided
			if opts.StopStart {
				strategy = service.StrategyStopStart
			}
		}
		deps.Logger.Debug("Unit ready", "unit", target.Name, "state", state.String(), "strategy", strategy.String())

	case service.KindCompose:
		project, err := app.Inspector.Inspect(ctx, target.ComposeFile)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Compose file detected: %s (project %s, %d services)\n",
			target.ComposeFile, project.Name, len(project.Services))
	}

	started := deps.Clock.Now()
	var outcome service.Outcome
	switch op {
	case service.OpTickle:
		outcome = app.Executor.Execute(ctx, target, strategy)
	case service.OpStart:
		outcome = app.Executor.Start(ctx, target)
	case service.OpStop:
		outcome = app.Executor.Stop(ctx, target)
	}

	printOutcome(deps.Stdout, outcome, deps.Clock.Since(started))
	for _, advisory := range outcome.Advisories {
		printWarning(deps.Stderr, advisory)
	}

	// The operation already happened; a lost history line must not change the result.
	if err := app.History.Record(outcome); err != nil {
		printWarning(deps.Stderr, fmt.Sprintf("failed to record history: %v", err))
	}

	if !outcome.Succeeded {
		if outcome.Err != nil {
			return outcome.Err
		}
		return errors.New("operation failed")
	}

	if opts.Follow {
		_, _ = fmt.Fprintln(deps.Stdout, "Following logs (Ctrl+C to stop)...")
		return app.Follower.Follow(ctx, target)
	}
	return nil
}
