//go:build !unix

package history

import (
	"os"

	"github.com/gofrs/flock"
)

// lock takes an OS file lock on a sidecar of f. Windows byte-range locks are
// mandatory, so locking f itself would block the append through f. The OS
// drops the lock when the holder exits, so a crash leaves no stale lock.
func lock(f *os.File, exclusive bool) (func() error, error) {
	fl := flock.New(f.Name() + ".lock")

	var err error
	if exclusive {
		err = fl.Lock()
	} else {
		err = fl.RLock()
	}
	if err != nil {
		return nil, err
	}
	return fl.Unlock, nil
}
