//go:build unix

package history

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// lock takes a flock(2) advisory lock on f and blocks until it is granted.
func lock(f *os.File, exclusive bool) (func() error, error) {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	for {
		err := unix.Flock(fd, how)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EINTR) {
			return nil, err
		}
	}

	return func() error {
		return unix.Flock(fd, unix.LOCK_UN)
	}, nil
}
