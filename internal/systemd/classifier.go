package systemd

import (
	"context"

	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// Decide maps unit properties onto a restart strategy. The first matching rule wins:
//
//  1. oneshot without RemainAfterExit is stopped and started again
//  2. oneshot with RemainAfterExit is restarted
//  3. any other type is restarted when the manager allows it
func Decide(props service.UnitProperties) service.Strategy {
	switch props.Type {
	case service.TypeOneshot:
		if !props.RemainAfterExit {
			return service.StrategyStopStart
		}
		return service.StrategyRestart
	case service.TypeSimple, service.TypeForking, service.TypeNotify, service.TypeOther:
		if props.CanRestart {
			return service.StrategyRestart
		}
		return service.StrategyStopStart
	}
	return service.StrategyStopStart
}

// Classifier picks the restart strategy for a unit.
type Classifier struct {
	backend Backend
	logger  log.Logger
}

// NewClassifier creates a Classifier querying backend.
func NewClassifier(backend Backend, logger log.Logger) *Classifier {
	return &Classifier{backend: backend, logger: logger}
}

// Classify returns the current state of unit and the strategy to restart it with.
func (c *Classifier) Classify(ctx context.Context, unit string) (service.State, service.Strategy, error) {
	status, err := c.backend.Query(ctx, unit)
	if err != nil {
		return service.StateUnknown, service.StrategyNone, err
	}

	strategy := Decide(status.Properties)
	c.logger.Debug("Classified unit",
		"unit", unit,
		"state", status.State.String(),
		"type", status.Properties.Type.String(),
		"remainAfterExit", status.Properties.RemainAfterExit,
		"canRestart", status.Properties.CanRestart,
		"strategy", strategy.String())

	return status.State, strategy, nil
}
