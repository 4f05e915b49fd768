// Package systemd queries and drives units through the host service manager.
package systemd

import (
	"context"

	"github.com/trly/tickle/internal/service"
)

// Action is a state change requested from the service manager.
type Action int

// Actions.
const (
	ActionStart Action = iota
	ActionStop
	ActionRestart
)

// String returns the systemctl verb for the action.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRestart:
		return "restart"
	}
	return "unknown"
}

// UnitStatus is a point-in-time view of a unit.
type UnitStatus struct {
	Name       string
	LoadState  string
	State      service.State
	Properties service.UnitProperties
}

// Backend is the narrow capability interface over the service manager.
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Query returns the state and structural properties of unit.
	// It fails with ErrUnitNotFound or ErrBackendUnavailable.
	Query(ctx context.Context, unit string) (*UnitStatus, error)

	// Act performs action on unit and blocks until the manager reports the result.
	Act(ctx context.Context, unit string, action Action) error
}

// Connection wraps systemd D-Bus operations for testability.
type Connection interface {
	// GetUnitProperties gets all properties of a systemd unit.
	GetUnitProperties(ctx context.Context, unitName string) (map[string]interface{}, error)

	// GetUnitTypeProperties gets the properties of the unit's type-specific interface.
	GetUnitTypeProperties(ctx context.Context, unitName, unitType string) (map[string]interface{}, error)

	// StartUnit starts a systemd unit.
	StartUnit(ctx context.Context, unitName, mode string) (chan string, error)

	// StopUnit stops a systemd unit.
	StopUnit(ctx context.Context, unitName, mode string) (chan string, error)

	// RestartUnit restarts a systemd unit.
	RestartUnit(ctx context.Context, unitName, mode string) (chan string, error)

	// Close closes the connection.
	Close() error
}

// ConnectionFactory creates Connection instances.
type ConnectionFactory interface {
	// NewConnection creates a new systemd connection based on configuration.
	NewConnection(ctx context.Context, userMode bool) (Connection, error)
}
