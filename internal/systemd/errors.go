package systemd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trly/tickle/internal/service"
)

// ConnectionError represents an error connecting to systemd.
type ConnectionError struct {
	UserMode bool  // Whether this was a user or system connection attempt
	Cause    error // The underlying error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	mode := "system"
	if e.UserMode {
		mode = "user"
	}
	return fmt.Sprintf("failed to connect to systemd %s bus: %v", mode, e.Cause)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(userMode bool, cause error) *ConnectionError {
	return &ConnectionError{
		UserMode: userMode,
		Cause:    cause,
	}
}

// IsConnectionError checks if an error is a ConnectionError.
func IsConnectionError(err error) bool {
	var cerr *ConnectionError
	return errors.As(err, &cerr)
}

// JobError reports a job that the manager finished with a result other than "done".
type JobError struct {
	Action Action
	Unit   string
	Result string
}

// Error implements the error interface.
func (e *JobError) Error() string {
	return fmt.Sprintf("job %s for %s finished with result %q", e.Action, e.Unit, e.Result)
}

// Messages systemctl prints when it cannot reach the manager at all.
var unavailableMarkers = []string{
	"Failed to connect to bus",
	"System has not been booted with systemd",
	"Failed to get D-Bus connection",
}

func isUnavailableOutput(output string) bool {
	for _, marker := range unavailableMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

// Messages systemctl prints when it rejects or cannot find the unit itself.
var unitRejectedMarkers = []string{
	"is not valid",
	"not found",
	"not loaded",
}

func isUnitRejectedOutput(output string) bool {
	for _, marker := range unitRejectedMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

func unavailable(unit string, cause error) *service.Error {
	return service.NewError(service.ErrBackendUnavailable, unit, cause)
}

func notFound(unit string) *service.Error {
	return service.NewError(service.ErrUnitNotFound, unit, nil)
}
