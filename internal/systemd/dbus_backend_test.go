package systemd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/tickle/internal/service"
	"github.com/trly/tickle/internal/testutil"
)

func newMockBackend(t *testing.T, conn *MockConnection) *DBusBackend {
	t.Helper()
	return NewDBusBackend(&MockConnectionFactory{Connection: conn}, false, testutil.NewTestLogger(t))
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "nginx.service", UnitName("nginx"))
	assert.Equal(t, "backup.timer", UnitName("backup.timer"))
	assert.Equal(t, "getty@tty1.service", UnitName("getty@tty1.service"))
	assert.Equal(t, "php8.2-fpm.service", UnitName("php8.2-fpm"))
	assert.Equal(t, "php8.2-fpm.service", UnitName("php8.2-fpm.service"))
	assert.Equal(t, "home.mount", UnitName("home.mount"))
	assert.Equal(t, "app.v2.service", UnitName("app.v2"))
}

func TestDBusBackend_QueryDottedName(t *testing.T) {
	conn := &MockConnection{
		GetUnitPropertiesFunc: func(_ context.Context, unitName string) (map[string]interface{}, error) {
			assert.Equal(t, "php8.2-fpm.service", unitName)
			return map[string]interface{}{
				"LoadState":   "loaded",
				"ActiveState": "active",
				"CanStart":    true,
				"CanStop":     true,
			}, nil
		},
		GetUnitTypePropertiesFunc: func(_ context.Context, unitName, unitType string) (map[string]interface{}, error) {
			assert.Equal(t, "php8.2-fpm.service", unitName)
			return map[string]interface{}{"Type": "notify"}, nil
		},
	}

	status, err := newMockBackend(t, conn).Query(context.Background(), "php8.2-fpm")
	require.NoError(t, err)
	assert.Equal(t, service.StateActive, status.State)
}

func TestDBusBackend_Query(t *testing.T) {
	conn := &MockConnection{
		GetUnitPropertiesFunc: func(_ context.Context, unitName string) (map[string]interface{}, error) {
			assert.Equal(t, "backup.service", unitName)
			return map[string]interface{}{
				"LoadState":   "loaded",
				"ActiveState": "inactive",
				"CanStart":    true,
				"CanStop":     true,
			}, nil
		},
		GetUnitTypePropertiesFunc: func(_ context.Context, unitName, unitType string) (map[string]interface{}, error) {
			assert.Equal(t, "Service", unitType)
			return map[string]interface{}{
				"Type":            "oneshot",
				"RemainAfterExit": false,
			}, nil
		},
	}

	status, err := newMockBackend(t, conn).Query(context.Background(), "backup")
	require.NoError(t, err)
	assert.Equal(t, service.StateInactive, status.State)
	assert.Equal(t, service.TypeOneshot, status.Properties.Type)
	assert.False(t, status.Properties.RemainAfterExit)
	assert.True(t, status.Properties.CanRestart)
}

func TestDBusBackend_QueryNotFound(t *testing.T) {
	conn := &MockConnection{
		GetUnitPropertiesFunc: func(_ context.Context, _ string) (map[string]interface{}, error) {
			return map[string]interface{}{"LoadState": "not-found", "ActiveState": "inactive"}, nil
		},
	}

	_, err := newMockBackend(t, conn).Query(context.Background(), "missing")
	assert.True(t, service.IsUnitNotFound(err))
}

func TestDBusBackend_ConnectionFailure(t *testing.T) {
	factory := &MockConnectionFactory{
		NewConnectionFunc: func(_ context.Context, userMode bool) (Connection, error) {
			return nil, NewConnectionError(userMode, errors.New("dial unix /run/systemd/private: no such file"))
		},
	}
	backend := NewDBusBackend(factory, true, testutil.NewTestLogger(t))

	_, err := backend.Query(context.Background(), "nginx")
	require.Error(t, err)
	assert.True(t, service.IsBackendUnavailable(err))
	assert.True(t, IsConnectionError(err))
	assert.Contains(t, err.Error(), "user bus")

	err = backend.Act(context.Background(), "nginx", ActionRestart)
	assert.True(t, service.IsBackendUnavailable(err))
}

func TestDBusBackend_Act(t *testing.T) {
	var closed int
	conn := &MockConnection{
		RestartUnitFunc: func(_ context.Context, unitName, mode string) (chan string, error) {
			assert.Equal(t, "nginx.service", unitName)
			assert.Equal(t, "replace", mode)
			return JobResult("done"), nil
		},
		StopUnitFunc: func(_ context.Context, _, _ string) (chan string, error) {
			return JobResult("failed"), nil
		},
		StartUnitFunc: func(_ context.Context, _, _ string) (chan string, error) {
			return nil, errors.New("Unit nginx.service is masked.")
		},
		CloseFunc: func() error {
			closed++
			return nil
		},
	}
	backend := newMockBackend(t, conn)

	require.NoError(t, backend.Act(context.Background(), "nginx", ActionRestart))

	err := backend.Act(context.Background(), "nginx", ActionStop)
	var jobErr *JobError
	require.ErrorAs(t, err, &jobErr)
	assert.Equal(t, "failed", jobErr.Result)

	err = backend.Act(context.Background(), "nginx", ActionStart)
	assert.EqualError(t, err, "Unit nginx.service is masked.")

	assert.Equal(t, 3, closed)
}

func TestDBusBackend_ActCancelled(t *testing.T) {
	conn := &MockConnection{
		StartUnitFunc: func(_ context.Context, _, _ string) (chan string, error) {
			return make(chan string), nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newMockBackend(t, conn).Act(ctx, "nginx", ActionStart)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBackend(t *testing.T) {
	cfg := testutil.NewMockConfig(t).GetConfig()
	logger := testutil.NewTestLogger(t)

	backend, err := NewBackend(cfg, nil, logger)
	require.NoError(t, err)
	assert.Equal(t, "systemctl", backend.Name())

	cfg.Backend = "dbus"
	backend, err = NewBackend(cfg, nil, logger)
	require.NoError(t, err)
	assert.Equal(t, "dbus", backend.Name())

	cfg.Backend = "sysvinit"
	_, err = NewBackend(cfg, nil, logger)
	assert.Error(t, err)
}
