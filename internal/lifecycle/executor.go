// Package lifecycle carries out restart, start and stop operations against
// systemd units and compose stacks and reports what happened.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
	"github.com/trly/tickle/internal/systemd"
)

// ComposeDriver brings compose stacks down and up.
type ComposeDriver interface {
	Act(ctx context.Context, file string, step service.Step) error
}

// PrivilegeAdvisory is attached to unit outcomes when the process is not root
// and not operating on the user manager.
const PrivilegeAdvisory = "not running as root; system units usually require elevated privileges (use sudo or --user)"

// Executor runs a chosen strategy against a target. It never returns an
// error: every failure is captured in the returned Outcome.
type Executor struct {
	units    systemd.Backend
	compose  ComposeDriver
	userMode bool
	euid     func() int
	logger   log.Logger
}

// NewExecutor creates an Executor acting on units through units and on
// compose stacks through compose.
func NewExecutor(units systemd.Backend, compose ComposeDriver, userMode bool, logger log.Logger) *Executor {
	return &Executor{
		units:    units,
		compose:  compose,
		userMode: userMode,
		euid:     os.Geteuid,
		logger:   logger,
	}
}

// WithEUID replaces the effective user id lookup.
func (e *Executor) WithEUID(euid func() int) *Executor {
	e.euid = euid
	return e
}

// Execute restarts target with strategy. Compose stacks are always brought
// down and then up, whatever the strategy.
func (e *Executor) Execute(ctx context.Context, target service.Target, strategy service.Strategy) service.Outcome {
	out := e.begin(target, service.OpTickle, strategy)

	switch target.Kind {
	case service.KindCompose:
		out.Strategy = service.StrategyStopStart
		e.transition(&out, service.PhaseExecuting)
		// Down failures do not stop the up: a stack should converge to running.
		downErr := e.composeStep(ctx, target, service.StepDown)
		upErr := e.composeStep(ctx, target, service.StepUp)
		e.finish(&out, firstStepError(downErr, upErr))

	case service.KindUnit:
		out.InitialState = e.state(ctx, target.Name)
		e.transition(&out, service.PhaseExecuting)
		e.finish(&out, e.restartUnit(ctx, target.Name, strategy))
		out.FinalState = e.state(ctx, target.Name)
	}

	return out
}

// Start starts target. Compose stacks are brought up detached.
func (e *Executor) Start(ctx context.Context, target service.Target) service.Outcome {
	return e.single(ctx, target, service.OpStart, service.StepStart, service.StepUp)
}

// Stop stops target. Compose stacks are brought down.
func (e *Executor) Stop(ctx context.Context, target service.Target) service.Outcome {
	return e.single(ctx, target, service.OpStop, service.StepStop, service.StepDown)
}

func (e *Executor) single(ctx context.Context, target service.Target, op service.Operation, unitStep, composeStep service.Step) service.Outcome {
	out := e.begin(target, op, service.StrategyNone)

	switch target.Kind {
	case service.KindCompose:
		e.transition(&out, service.PhaseExecuting)
		e.finish(&out, e.composeStep(ctx, target, composeStep))

	case service.KindUnit:
		out.InitialState = e.state(ctx, target.Name)
		e.transition(&out, service.PhaseExecuting)
		e.finish(&out, e.unitStep(ctx, target.Name, unitStep))
		out.FinalState = e.state(ctx, target.Name)
	}

	return out
}

func (e *Executor) begin(target service.Target, op service.Operation, strategy service.Strategy) service.Outcome {
	out := service.Outcome{
		Target:       target,
		Operation:    op,
		Strategy:     strategy,
		InitialState: service.StateUnknown,
		FinalState:   service.StateUnknown,
		Phase:        service.PhaseResolved,
	}

	if target.Kind == service.KindUnit {
		// Units reach the executor only after classification.
		out.Phase = service.PhaseClassified
		if !e.userMode && e.euid() != 0 {
			out.Advisories = append(out.Advisories, PrivilegeAdvisory)
		}
	}

	e.logger.Debug("Operation starting",
		"operation", op.String(),
		"target", target.Label(),
		"strategy", strategy.String(),
		"phase", out.Phase.String())
	return out
}

func (e *Executor) transition(out *service.Outcome, phase service.Phase) {
	if out.Phase.Terminal() {
		return
	}
	e.logger.Debug("Operation phase changed",
		"target", out.Target.Label(),
		"from", out.Phase.String(),
		"to", phase.String())
	out.Phase = phase
}

func (e *Executor) finish(out *service.Outcome, err *service.Error) {
	if err != nil {
		out.Err = err
		e.transition(out, service.PhaseFailed)
		e.logger.Debug("Operation failed", "target", out.Target.Label(), "error", err)
		return
	}
	out.Succeeded = true
	e.transition(out, service.PhaseVerified)
}

// state returns the current state of unit, or StateUnknown when it cannot be queried.
func (e *Executor) state(ctx context.Context, unit string) service.State {
	status, err := e.units.Query(ctx, unit)
	if err != nil {
		e.logger.Debug("Could not query unit state", "unit", unit, "error", err)
		return service.StateUnknown
	}
	return status.State
}

func (e *Executor) restartUnit(ctx context.Context, unit string, strategy service.Strategy) *service.Error {
	switch strategy {
	case service.StrategyRestart:
		return e.unitStep(ctx, unit, service.StepRestart)
	case service.StrategyStopStart:
		if err := e.unitStep(ctx, unit, service.StepStop); err != nil {
			return err
		}
		return e.unitStep(ctx, unit, service.StepStart)
	case service.StrategyNone:
		return service.NewStepError(service.StepRestart, unit, errors.New("no restart strategy selected"))
	}
	return service.NewStepError(service.StepRestart, unit, fmt.Errorf("unknown strategy %d", strategy))
}

func (e *Executor) unitStep(ctx context.Context, unit string, step service.Step) *service.Error {
	action, err := unitAction(step)
	if err != nil {
		return service.NewStepError(step, unit, err)
	}

	e.logger.Debug("Running unit action", "unit", unit, "action", action.String(), "backend", e.units.Name())
	if err := e.units.Act(ctx, unit, action); err != nil {
		// A manager that cannot be reached is still reported as the step that failed.
		return service.NewStepError(step, unit, err)
	}
	return nil
}

func unitAction(step service.Step) (systemd.Action, error) {
	switch step {
	case service.StepRestart:
		return systemd.ActionRestart, nil
	case service.StepStop:
		return systemd.ActionStop, nil
	case service.StepStart:
		return systemd.ActionStart, nil
	case service.StepNone, service.StepDown, service.StepUp:
		return 0, fmt.Errorf("step %q is not a unit action", step)
	}
	return 0, fmt.Errorf("unknown step %d", step)
}

func (e *Executor) composeStep(ctx context.Context, target service.Target, step service.Step) *service.Error {
	e.logger.Debug("Running compose step", "file", target.ComposeFile, "step", step.String())
	if err := e.compose.Act(ctx, target.ComposeFile, step); err != nil {
		return service.NewStepError(step, target.Label(), err)
	}
	return nil
}

// firstStepError keeps the earliest failed step and joins the causes of both.
func firstStepError(first, second *service.Error) *service.Error {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return &service.Error{
		Kind:   first.Kind,
		Step:   first.Step,
		Target: first.Target,
		Cause:  errors.Join(first.Cause, second),
	}
}
