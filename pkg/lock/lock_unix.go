//go:build darwin || linux || freebsd || netbsd || openbsd

package lock

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/konsave/pkg/errors"
	"golang.org/x/sys/unix"
)

type flock struct {
	file *os.File
	once sync.Once
}

func acquire(path string) (*flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(path))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open lock file %s", path)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, lockedError(path, err)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot lock %s", path)
	}

	return &flock{file: f}, nil
}

func (l *flock) Release() error {
	var err error
	l.once.Do(func() {
		if uerr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); uerr != nil {
			err = uerr
		}
		if cerr := l.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}
