// Package archive packs a directory into a zip archive and unpacks it
// again. Exported profiles use it with their own extension; the container
// is plain zip so any unzip tool can inspect one.
package archive

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/types"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Options configures Pack.
type Options struct {
	// Level is the deflate level, 0-9, or -1 for the library default.
	Level int
	// OnFile is called with the archive name of every file written.
	OnFile func(name string)
}

// Pack writes every file and directory below srcDir to w as a zip
// archive. Names are relative to srcDir and use forward slashes. It
// returns the number of files written.
func Pack(fsys types.FS, srcDir string, w io.Writer, opts Options) (int, error) {
	logger := logging.GetLogger("archive")

	zw := zip.NewWriter(w)
	level := opts.Level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	p := &packer{fs: fsys, zw: zw, opts: opts}
	if err := p.addDir(srcDir, ""); err != nil {
		_ = zw.Close()
		return p.files, err
	}
	if err := zw.Close(); err != nil {
		return p.files, errors.Wrap(err, errors.ErrFileWrite, "cannot finish archive")
	}

	logger.Debug().Str("source", srcDir).Int("files", p.files).Msg("Archive written")
	return p.files, nil
}

type packer struct {
	fs    types.FS
	zw    *zip.Writer
	opts  Options
	files int
}

func (p *packer) addDir(dir, prefix string) error {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		name := path.Join(prefix, entry.Name())

		info, err := p.fs.Stat(full)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", full)
		}

		if info.IsDir() {
			header := &zip.FileHeader{Name: name + "/", Method: zip.Store, Modified: info.ModTime()}
			header.SetMode(info.Mode())
			if _, err := p.zw.CreateHeader(header); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot add %s", name)
			}
			if err := p.addDir(full, name); err != nil {
				return err
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		if err := p.addFile(full, name, info); err != nil {
			return err
		}
	}
	return nil
}

func (p *packer) addFile(full, name string, info os.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot describe %s", full)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := p.zw.CreateHeader(header)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot add %s", name)
	}

	in, err := p.fs.Open(full)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", full)
	}
	defer func() { _ = in.Close() }()

	if _, err := io.Copy(w, in); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot compress %s", full)
	}

	p.files++
	if p.opts.OnFile != nil {
		p.opts.OnFile(name)
	}
	return nil
}

// open reads the archive at archivePath into memory and opens it.
func open(fsys types.FS, archivePath string) (*zip.Reader, error) {
	data, err := fsys.ReadFile(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrArchiveInvalid, "%s does not exist", archivePath)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", archivePath)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Newf(errors.ErrArchiveInvalid, "%s is not a valid archive: %v", archivePath, err)
	}
	return zr, nil
}

// IsArchive reports whether archivePath ends with ext and holds a zip
// archive.
func IsArchive(fsys types.FS, archivePath, ext string) bool {
	if !strings.HasSuffix(archivePath, ext) {
		return false
	}
	_, err := open(fsys, archivePath)
	return err == nil
}

// Unpack extracts the archive at archivePath into dstDir, creating it as
// needed. Entries that would land outside dstDir are rejected. It returns
// the number of files extracted.
func Unpack(fsys types.FS, archivePath, dstDir string) (int, error) {
	zr, err := open(fsys, archivePath)
	if err != nil {
		return 0, err
	}

	dstDir = filepath.Clean(dstDir)
	if err := fsys.MkdirAll(dstDir, 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dstDir)
	}

	files := 0
	for _, f := range zr.File {
		target := filepath.Join(dstDir, filepath.FromSlash(f.Name))
		if target == dstDir && f.FileInfo().IsDir() {
			continue
		}
		if path.IsAbs(f.Name) || target == dstDir || !paths.ContainsPath(dstDir, target) {
			return files, errors.Newf(errors.ErrArchiveInvalid,
				"archive entry %q escapes the extraction directory", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := fsys.MkdirAll(target, 0755); err != nil {
				return files, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", target)
			}
			continue
		}

		if err := extract(fsys, f, target); err != nil {
			return files, err
		}
		files++
	}

	logger := logging.GetLogger("archive")
	logger.Debug().Str("archive", archivePath).Int("files", files).Msg("Archive extracted")
	return files, nil
}

func extract(fsys types.FS, f *zip.File, target string) error {
	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
	}

	in, err := f.Open()
	if err != nil {
		return errors.Newf(errors.ErrArchiveInvalid, "cannot read archive entry %s: %v", f.Name, err)
	}
	defer func() { _ = in.Close() }()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	out, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", target)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Newf(errors.ErrArchiveInvalid, "cannot extract %s: %v", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
	}
	return nil
}
