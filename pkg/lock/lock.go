// Package lock provides the advisory lock that keeps two konsave
// processes from mutating the same profile store at once.
package lock

import (
	"github.com/arthur-debert/konsave/pkg/errors"
)

// Lock is a held lock. Release is safe to call more than once.
type Lock interface {
	Release() error
}

// Acquire takes an exclusive lock on path, creating the file if needed.
// It does not wait: a lock held elsewhere fails with ErrLocked.
func Acquire(path string) (Lock, error) {
	l, err := acquire(path)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func lockedError(path string, err error) error {
	return errors.Wrapf(err, errors.ErrLocked,
		"another konsave process is using the profile store (lock %s)", path).
		WithDetail("path", path)
}

// noop is returned where locking is unavailable or disabled.
type noop struct{}

func (noop) Release() error { return nil }

// None returns a lock that holds nothing.
func None() Lock { return noop{} }
