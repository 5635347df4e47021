package checkpoint

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked means another process holds the run lock for this checkpoint.
var ErrLocked = errors.New("checkpoint locked by another run")

// RunLock is an exclusive advisory lock scoped to a checkpoint file. Two
// processors sharing one checkpoint would interleave saves and break the
// never-decreasing line count, so a run must hold the lock from before its
// first Load until it exits.
type RunLock struct {
	fl *flock.Flock
}

// NewRunLock creates the lock guarding checkpointPath. The lock file lives
// next to the checkpoint with a .lock suffix.
func NewRunLock(checkpointPath string) *RunLock {
	return &RunLock{fl: flock.New(checkpointPath + ".lock")}
}

// Acquire takes the lock, failing fast with ErrLocked when another process
// already holds it.
func (l *RunLock) Acquire() error {
	locked, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("Acquire: locking %s: %w", l.fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("Acquire: %s: %w", l.fl.Path(), ErrLocked)
	}
	return nil
}

// Release drops the lock. Safe to call even when Acquire failed.
func (l *RunLock) Release() error {
	return l.fl.Unlock()
}
