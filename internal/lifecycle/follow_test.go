package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/tickle/internal/compose"
	"github.com/trly/tickle/internal/service"
	"github.com/trly/tickle/internal/testutil"
	"github.com/trly/tickle/internal/testutil/fakerunner"
)

func TestJournalArgs(t *testing.T) {
	assert.Equal(t, []string{"-f", "-u", "nginx"}, JournalArgs("nginx", false))
	assert.Equal(t, []string{"--user", "-f", "-u", "syncthing"}, JournalArgs("syncthing", true))
}

func TestFollower_Follow(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	runner := fakerunner.New()
	driver := compose.NewDriver(runner, runner, []string{"docker compose"}, logger)
	follower := NewFollower(runner, driver, false, logger)

	require.NoError(t, follower.Follow(context.Background(), service.UnitTarget("nginx")))
	require.NoError(t, follower.Follow(context.Background(), service.ComposeTarget("/srv/app/compose.yml")))

	assert.Equal(t, []string{
		"journalctl -f -u nginx",
		"docker compose -f /srv/app/compose.yml logs -f",
	}, runner.CommandLines())
}

func TestFollower_Errors(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	runner := fakerunner.New()
	runner.SetError("journalctl", []string{"-f", "-u", "nginx"}, errors.New("signal: interrupt"))
	follower := NewFollower(runner, nil, false, logger)

	assert.Error(t, follower.Follow(context.Background(), service.UnitTarget("nginx")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, follower.Follow(ctx, service.UnitTarget("nginx")))
}
