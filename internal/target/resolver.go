// Package target decides what an invocation operates on: a named service
// unit, or the compose project found in the working directory.
package target

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// ComposeFileNames lists the compose file names probed, highest priority first.
var ComposeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
	"container-compose.yml",
	"container-compose.yaml",
}

// StatFunc matches os.Stat.
type StatFunc func(name string) (fs.FileInfo, error)

// Resolver turns CLI input into a service.Target.
type Resolver struct {
	stat   StatFunc
	logger log.Logger
}

// NewResolver creates a Resolver backed by the real filesystem.
func NewResolver(logger log.Logger) *Resolver {
	return &Resolver{stat: os.Stat, logger: logger}
}

// WithStat replaces the stat function, for tests.
func (r *Resolver) WithStat(stat StatFunc) *Resolver {
	r.stat = stat
	return r
}

// Resolve returns a unit target when name is set. Otherwise it returns the
// highest priority compose file in dir, or an ErrNoTargetFound error.
func (r *Resolver) Resolve(name, dir string) (service.Target, error) {
	if name != "" {
		r.logger.Debug("Resolved unit target", "name", name)
		return service.UnitTarget(name), nil
	}

	path, err := r.FindComposeFile(dir)
	if err != nil {
		return service.Target{}, err
	}
	r.logger.Debug("Resolved compose target", "file", path)
	return service.ComposeTarget(path), nil
}

// FindComposeFile returns the first compose file in dir, in priority order.
func (r *Resolver) FindComposeFile(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", service.NewError(service.ErrNoTargetFound, dir, err)
	}

	for _, name := range ComposeFileNames {
		candidate := filepath.Join(abs, name)
		info, err := r.stat(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Debug("Skipping compose candidate", "path", candidate, "error", err)
			}
			continue
		}
		if info.IsDir() {
			continue
		}
		return candidate, nil
	}

	return "", service.NewError(service.ErrNoTargetFound, "", errors.New("no service name provided and no compose file found"))
}
