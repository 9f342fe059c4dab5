package lock

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the lock for the same lock file.
var ErrLocked = errors.New("another run is using this lockfile")

// RunLock is an advisory lock held for the duration of a run.
type RunLock struct {
	fl *flock.Flock
}

// AcquireRunLock takes an advisory lock on "<lockfile>.lck" without blocking.
func AcquireRunLock(lockfilePath string) (*RunLock, error) {
	fl := flock.New(lockfilePath + ".lck")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("cannot acquire run lock %q: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("cannot acquire run lock %q: %w", fl.Path(), ErrLocked)
	}
	return &RunLock{fl: fl}, nil
}

// Path returns the path of the lock's marker file.
func (l *RunLock) Path() string {
	return l.fl.Path()
}

// Release unlocks. The marker file is left in place.
func (l *RunLock) Release() error {
	return l.fl.Unlock()
}
