package compose

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/compose-spec/compose-go/v2/types"
	"github.com/compose-spec/compose-go/v2/validation"
)

// validateProject validates a compose project against the compose specification.
// It runs compose-go's schema validation, which is deferred during initial loading
// to allow setting the project name from the directory.
func validateProject(ctx context.Context, project *types.Project) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if project == nil {
		return &validationError{message: "project is not defined"}
	}

	// The validation package works on map[string]any.
	projectJSON, err := project.MarshalJSON()
	if err != nil {
		return &validationError{message: "failed to marshal project", cause: err}
	}

	var projectMap map[string]any
	if err := json.Unmarshal(projectJSON, &projectMap); err != nil {
		return &validationError{message: "failed to unmarshal project", cause: err}
	}

	if err := validation.Validate(projectMap); err != nil {
		return &validationError{message: err.Error(), cause: err}
	}

	if len(project.Services) == 0 {
		return &validationError{message: "project defines no services"}
	}

	return nil
}

// isYAMLError reports whether a loader failure came from the file contents
// rather than from the filesystem.
func isYAMLError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, os.ErrNotExist) &&
		!errors.Is(err, os.ErrPermission)
}
