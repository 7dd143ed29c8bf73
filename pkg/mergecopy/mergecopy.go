// Package mergecopy copies files and directory trees into destinations that
// may already exist.
//
// Directories are merged: the destination keeps every name it had and
// gains every name of the source. Files present in both are replaced by
// the source copy. Files only in the destination are left alone, so
// applying a profile never deletes live configuration.
package mergecopy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/types"
)

// DefaultMaxDepth bounds directory recursion when Options.MaxDepth is unset.
const DefaultMaxDepth = 64

// Options configures a Copier.
type Options struct {
	// MaxDepth is the deepest directory level followed below the source.
	MaxDepth int
	// OnFile is called after every regular file is copied.
	OnFile func(src, dst string)
}

// Copier performs merge-copies on a filesystem.
type Copier struct {
	fs   types.FS
	opts Options
}

// New creates a Copier over fsys.
func New(fsys types.FS, opts Options) *Copier {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Copier{fs: fsys, opts: opts}
}

// Copy merges src into dst. src must exist and differ from dst.
func (c *Copier) Copy(src, dst string) error {
	if paths.SamePath(src, dst) {
		return errors.Newf(errors.ErrSamePath, "source and destination are the same path: %s", src).
			WithDetail("path", src)
	}

	info, err := c.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrNotFound, "%s does not exist", src).WithDetail("path", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
	}

	if info.IsDir() && paths.ContainsPath(src, dst) {
		return errors.Newf(errors.ErrSamePath, "cannot copy %s into itself (%s)", src, dst).
			WithDetail("path", src)
	}

	logger := logging.GetLogger("mergecopy")
	logger.Debug().Str("source", src).Str("dest", dst).Msg("Copying")

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dst))
	}

	if info.IsDir() {
		return c.copyDir(src, dst, info.Mode().Perm(), 0)
	}
	return c.copyFile(src, dst, info.Mode().Perm())
}

// CopyIfExists is Copy, except that a missing src is skipped. It reports
// whether anything was copied.
func (c *Copier) CopyIfExists(src, dst string) (bool, error) {
	if _, err := c.fs.Stat(src); err != nil {
		if os.IsNotExist(err) {
			logger := logging.GetLogger("mergecopy")
			logger.Debug().Str("source", src).Msg("Source does not exist, skipping")
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
	}
	if err := c.Copy(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Copier) copyDir(src, dst string, perm fs.FileMode, depth int) error {
	if depth > c.opts.MaxDepth {
		return errors.Newf(errors.ErrCopyDepth,
			"directory nesting under %s exceeds %d levels (symlink cycle?)", src, c.opts.MaxDepth).
			WithDetail("path", src)
	}

	if existing, err := c.fs.Stat(dst); err == nil && !existing.IsDir() {
		if err := c.fs.Remove(dst); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dst)
		}
	}
	if err := c.fs.MkdirAll(dst, perm|0700); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dst)
	}

	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", src)
	}

	logger := logging.GetLogger("mergecopy")
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		// Stat, not Lstat: symlinks are copied as what they point to
		info, err := c.fs.Stat(from)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn().Str("path", from).Msg("Skipping broken symlink")
				continue
			}
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", from)
		}

		switch {
		case info.IsDir():
			err = c.copyDir(from, to, info.Mode().Perm(), depth+1)
		case info.Mode().IsRegular():
			err = c.copyFile(from, to, info.Mode().Perm())
		default:
			logger.Debug().Str("path", from).Str("mode", info.Mode().String()).
				Msg("Skipping special file")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// copyFile replaces dst with a copy of src.
func (c *Copier) copyFile(src, dst string, perm fs.FileMode) error {
	// a directory at dst is replaced wholesale
	if _, err := c.fs.Stat(dst); err == nil {
		if err := c.fs.RemoveAll(dst); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dst)
		}
	}

	in, err := c.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := c.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}

	if c.opts.OnFile != nil {
		c.opts.OnFile(src, dst)
	}
	return nil
}
