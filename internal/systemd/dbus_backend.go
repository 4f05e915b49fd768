package systemd

import (
	"context"
	"fmt"
	"strings"

	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// DBusBackend drives units over the systemd D-Bus API.
type DBusBackend struct {
	connectionFactory ConnectionFactory
	userMode          bool
	logger            log.Logger
}

// NewDBusBackend creates a D-Bus backed Backend.
func NewDBusBackend(connectionFactory ConnectionFactory, userMode bool, logger log.Logger) *DBusBackend {
	return &DBusBackend{
		connectionFactory: connectionFactory,
		userMode:          userMode,
		logger:            logger,
	}
}

// Name returns the backend name.
func (b *DBusBackend) Name() string {
	return "dbus"
}

// unitTypes are the suffixes systemd accepts on a full unit name.
var unitTypes = map[string]bool{
	"service":   true,
	"socket":    true,
	"target":    true,
	"timer":     true,
	"mount":     true,
	"automount": true,
	"path":      true,
	"slice":     true,
	"scope":     true,
	"swap":      true,
	"device":    true,
}

// UnitName appends the .service suffix unless unit already ends in a unit
// type. Dots elsewhere in the name, as in php8.2-fpm, are not a type.
func UnitName(unit string) string {
	if i := strings.LastIndex(unit, "."); i >= 0 && unitTypes[unit[i+1:]] {
		return unit
	}
	return unit + ".service"
}

func (b *DBusBackend) connect(ctx context.Context, unit string) (Connection, error) {
	conn, err := b.connectionFactory.NewConnection(ctx, b.userMode)
	if err != nil {
		return nil, unavailable(unit, err)
	}
	return conn, nil
}

// Query reads the unit and service properties of unit.
func (b *DBusBackend) Query(ctx context.Context, unit string) (*UnitStatus, error) {
	conn, err := b.connect(ctx, unit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	name := UnitName(unit)
	props, err := conn.GetUnitProperties(ctx, name)
	if err != nil {
		return nil, unavailable(unit, err)
	}

	loadState, _ := props["LoadState"].(string)
	if loadState == "not-found" {
		return nil, notFound(unit)
	}

	activeState, _ := props["ActiveState"].(string)
	canStart, _ := props["CanStart"].(bool)
	canStop, _ := props["CanStop"].(bool)

	status := &UnitStatus{
		Name:      unit,
		LoadState: loadState,
		State:     service.ParseState(activeState),
		Properties: service.UnitProperties{
			Type:       service.TypeSimple,
			CanRestart: canStart && canStop,
		},
	}

	if strings.HasSuffix(name, ".service") {
		svcProps, err := conn.GetUnitTypeProperties(ctx, name, "Service")
		if err != nil {
			return nil, unavailable(unit, err)
		}
		rawType, _ := svcProps["Type"].(string)
		remain, _ := svcProps["RemainAfterExit"].(bool)
		status.Properties.Type = service.ParseServiceType(rawType)
		status.Properties.RawType = rawType
		status.Properties.RemainAfterExit = remain
	}

	return status, nil
}

// Act queues a job for unit in "replace" mode and waits for its result.
func (b *DBusBackend) Act(ctx context.Context, unit string, action Action) error {
	conn, err := b.connect(ctx, unit)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	name := UnitName(unit)
	b.logger.Debug("Queueing unit job", "unit", name, "action", action.String())

	var ch chan string
	switch action {
	case ActionStart:
		ch, err = conn.StartUnit(ctx, name, "replace")
	case ActionStop:
		ch, err = conn.StopUnit(ctx, name, "replace")
	case ActionRestart:
		ch, err = conn.RestartUnit(ctx, name, "replace")
	default:
		return fmt.Errorf("unsupported action %d", action)
	}
	if err != nil {
		return err
	}

	select {
	case result := <-ch:
		if result != "done" {
			return &JobError{Action: action, Unit: name, Result: result}
		}
	case <-ctx.Done():
		return fmt.Errorf("%s operation cancelled: %w", action, ctx.Err())
	}

	b.logger.Debug("Unit job finished", "unit", name, "action", action.String())
	return nil
}
