package library

import (
	"fmt"

	"phototag/internal/logging"

	"github.com/gofrs/flock"
)

// FileLock is an exclusive advisory lock on the library directory.
type FileLock struct {
	lock *flock.Flock
}

// Lock takes the library lock at path without blocking. It returns
// ErrLibraryLocked when another process already holds it.
func Lock(path string) (*FileLock, error) {
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLibraryLocked, path)
	}
	logging.Debug("Acquired library lock %s", path)
	return &FileLock{lock: l}, nil
}

// Release drops the lock.
func (l *FileLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release library lock: %w", err)
	}
	return nil
}
