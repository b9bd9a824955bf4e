// Package runlock guards an output tree against concurrent lacquer runs.
// Destinations are file-granular within one run, but two runs pointed at the
// same output directory would race on the same paths.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".lacquer.lock"

// Lock is a held advisory lock on an output directory.
type Lock struct {
	flock *flock.Flock
	path  string
}

// Acquire takes the run lock inside dir without blocking. The directory must
// already exist.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, lockFileName)
	fl := flock.New(path)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another lacquer run is already writing to %s", dir)
	}
	return &Lock{flock: fl, path: path}, nil
}

// Release drops the lock and removes the lock file best-effort.
func (l *Lock) Release() {
	if l == nil || l.flock == nil {
		return
	}
	_ = l.flock.Unlock()
	_ = os.Remove(l.path)
}
