package lifecycle

import (
	"context"

	"github.com/trly/tickle/internal/execx"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// ComposeLogs follows the logs of a compose stack.
type ComposeLogs interface {
	Logs(ctx context.Context, file string) error
}

// Follower streams the logs of a target after an operation.
type Follower struct {
	streamer execx.Streamer
	compose  ComposeLogs
	userMode bool
	logger   log.Logger
}

// NewFollower creates a Follower. Unit logs come from journalctl.
func NewFollower(streamer execx.Streamer, compose ComposeLogs, userMode bool, logger log.Logger) *Follower {
	return &Follower{
		streamer: streamer,
		compose:  compose,
		userMode: userMode,
		logger:   logger,
	}
}

// JournalArgs returns the journalctl arguments following unit.
func JournalArgs(unit string, userMode bool) []string {
	args := []string{"-f", "-u", unit}
	if userMode {
		args = append([]string{"--user"}, args...)
	}
	return args
}

// Follow blocks streaming the logs of target until ctx is cancelled or the
// log command exits. Cancellation is not an error.
func (f *Follower) Follow(ctx context.Context, target service.Target) error {
	f.logger.Debug("Following logs", "target", target.Label())

	var err error
	switch target.Kind {
	case service.KindUnit:
		err = f.streamer.Stream(ctx, "journalctl", JournalArgs(target.Name, f.userMode)...)
	case service.KindCompose:
		err = f.compose.Logs(ctx, target.ComposeFile)
	}

	if ctx.Err() != nil {
		return nil
	}
	return err
}
