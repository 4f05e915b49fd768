package systemd

import (
	"fmt"

	"github.com/trly/tickle/internal/config"
	"github.com/trly/tickle/internal/execx"
	"github.com/trly/tickle/internal/log"
)

// NewBackend returns the Backend selected by cfg.Backend.
func NewBackend(cfg *config.Settings, runner execx.Runner, logger log.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSystemctl, "":
		return NewCtlBackend(runner, cfg.UserMode, logger), nil
	case config.BackendDBus:
		return NewDBusBackend(NewConnectionFactory(logger), cfg.UserMode, logger), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}
