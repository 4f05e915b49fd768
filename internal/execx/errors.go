package execx

import (
	"errors"
	"os/exec"
)

// IsNotFound reports whether err means the executable could not be started,
// as opposed to having run and exited non-zero.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// ExitCode returns the exit code carried by err, or -1 when the command did
// not run to completion.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
