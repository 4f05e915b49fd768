package compose

import (
	"context"
	"maps"
	"slices"

	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// Project summarises a loaded compose project.
type Project struct {
	Name       string
	File       string
	WorkingDir string
	Services   []string
}

// Inspector checks that a compose file is readable before it is acted on.
type Inspector struct {
	validate bool
	logger   log.Logger
}

// NewInspector creates an Inspector. When validate is set the project is
// also checked against the compose schema.
func NewInspector(validate bool, logger log.Logger) *Inspector {
	return &Inspector{validate: validate, logger: logger}
}

// Inspect loads file and returns a summary of the project it defines.
// Any failure is reported as ErrComposeFileUnreadable.
func (i *Inspector) Inspect(ctx context.Context, file string) (*Project, error) {
	project, err := Load(ctx, file, &LoadOptions{Validate: i.validate})
	if err != nil {
		i.logger.Debug("Compose file could not be loaded", "file", file, "error", err)
		return nil, service.NewError(service.ErrComposeFileUnreadable, file, err)
	}

	summary := &Project{
		Name:       project.Name,
		File:       file,
		WorkingDir: project.WorkingDir,
		Services:   slices.Sorted(maps.Keys(project.Services)),
	}
	i.logger.Debug("Inspected compose project",
		"project", summary.Name,
		"file", file,
		"services", len(summary.Services))

	return summary, nil
}
