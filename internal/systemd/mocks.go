package systemd

import (
	"context"
	"fmt"
	"sync"

	"github.com/trly/tickle/internal/service"
)

// MockConnection implements Connection interface for testing.
type MockConnection struct {
	GetUnitPropertiesFunc     func(ctx context.Context, unitName string) (map[string]interface{}, error)
	GetUnitTypePropertiesFunc func(ctx context.Context, unitName, unitType string) (map[string]interface{}, error)
	StartUnitFunc             func(ctx context.Context, unitName, mode string) (chan string, error)
	StopUnitFunc              func(ctx context.Context, unitName, mode string) (chan string, error)
	RestartUnitFunc           func(ctx context.Context, unitName, mode string) (chan string, error)
	CloseFunc                 func() error
}

// GetUnitProperties gets all properties of a systemd unit.
func (m *MockConnection) GetUnitProperties(ctx context.Context, unitName string) (map[string]interface{}, error) {
	if m.GetUnitPropertiesFunc != nil {
		return m.GetUnitPropertiesFunc(ctx, unitName)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// GetUnitTypeProperties gets the type-specific properties of a systemd unit.
func (m *MockConnection) GetUnitTypeProperties(ctx context.Context, unitName, unitType string) (map[string]interface{}, error) {
	if m.GetUnitTypePropertiesFunc != nil {
		return m.GetUnitTypePropertiesFunc(ctx, unitName, unitType)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// StartUnit starts a systemd unit.
func (m *MockConnection) StartUnit(ctx context.Context, unitName, mode string) (chan string, error) {
	if m.StartUnitFunc != nil {
		return m.StartUnitFunc(ctx, unitName, mode)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// StopUnit stops a systemd unit.
func (m *MockConnection) StopUnit(ctx context.Context, unitName, mode string) (chan string, error) {
	if m.StopUnitFunc != nil {
		return m.StopUnitFunc(ctx, unitName, mode)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// RestartUnit restarts a systemd unit.
func (m *MockConnection) RestartUnit(ctx context.Context, unitName, mode string) (chan string, error) {
	if m.RestartUnitFunc != nil {
		return m.RestartUnitFunc(ctx, unitName, mode)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// Close closes the connection.
func (m *MockConnection) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockConnectionFactory implements ConnectionFactory interface for testing.
type MockConnectionFactory struct {
	NewConnectionFunc func(ctx context.Context, userMode bool) (Connection, error)
	Connection        Connection
}

// NewConnection creates a new systemd connection based on configuration.
func (m *MockConnectionFactory) NewConnection(ctx context.Context, userMode bool) (Connection, error) {
	if m.NewConnectionFunc != nil {
		return m.NewConnectionFunc(ctx, userMode)
	}
	if m.Connection != nil {
		return m.Connection, nil
	}
	return nil, fmt.Errorf("mock not configured")
}

// JobResult returns a channel that already holds result, as a queued job would.
func JobResult(result string) chan string {
	ch := make(chan string, 1)
	ch <- result
	return ch
}

// FakeBackend is a scripted Backend. Successful actions move the unit to the
// state a real manager would report afterwards, so before/after queries differ.
type FakeBackend struct {
	mu          sync.Mutex
	units       map[string]*UnitStatus
	queryErrors map[string]error
	actErrors   map[string]error
	calls       []string
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		units:       make(map[string]*UnitStatus),
		queryErrors: make(map[string]error),
		actErrors:   make(map[string]error),
	}
}

// AddUnit registers a unit with the given state and properties.
func (f *FakeBackend) AddUnit(name string, state service.State, props service.UnitProperties) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units[name] = &UnitStatus{Name: name, LoadState: "loaded", State: state, Properties: props}
	return f
}

// FailQuery makes every Query for unit return err.
func (f *FakeBackend) FailQuery(unit string, err error) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryErrors[unit] = err
	return f
}

// FailAction makes action on unit return err.
func (f *FakeBackend) FailAction(unit string, action Action, err error) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actErrors[action.String()+" "+unit] = err
	return f
}

// Calls returns the recorded calls as "<verb> <unit>" strings.
func (f *FakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Name returns the backend name.
func (f *FakeBackend) Name() string {
	return "fake"
}

// Query implements Backend.
func (f *FakeBackend) Query(_ context.Context, unit string) (*UnitStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "query "+unit)

	if err, ok := f.queryErrors[unit]; ok {
		return nil, err
	}
	u, ok := f.units[unit]
	if !ok {
		return nil, notFound(unit)
	}
	copied := *u
	return &copied, nil
}

// Act implements Backend.
func (f *FakeBackend) Act(_ context.Context, unit string, action Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := action.String() + " " + unit
	f.calls = append(f.calls, key)

	if err, ok := f.actErrors[key]; ok {
		if u, exists := f.units[unit]; exists {
			u.State = service.StateFailed
		}
		return err
	}
	u, ok := f.units[unit]
	if !ok {
		return fmt.Errorf("unit %s not found", UnitName(unit))
	}
	switch action {
	case ActionStart, ActionRestart:
		u.State = service.StateActive
	case ActionStop:
		u.State = service.StateInactive
	}
	return nil
}
