package export

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/archive"
	"github.com/arthur-debert/konsave/pkg/commands/internal"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/types"
)

// Archive layout
const (
	SaveDir   = "save"
	ExportDir = "export"
)

// ExportProfileOptions holds options for the export command
type ExportProfileOptions struct {
	Runtime *core.Runtime
	Name    string
	// Force overwrites an existing archive instead of picking a new name
	Force bool
	// Output is the archive path; extensions are stripped. "-" or
	// /dev/stdout streams the archive.
	Output string
	// WorkDir is where the default archive goes; defaults to the
	// working directory
	WorkDir string
	// OnFile is called for every file staged
	OnFile func(src, dst string)
}

// ExportProfile packs a profile and the entries of its export sections
// into one archive. The export sections are read from the live system at
// export time.
func ExportProfile(opts ExportProfileOptions) (*types.ExportResult, error) {
	logger := logging.GetLogger("commands.export")
	logger.Info().
		Str("profile", opts.Name).
		Str("output", opts.Output).
		Bool("force", opts.Force).
		Msg("Exporting profile")
	defer logging.LogOperationStart(logger, "export")()

	rt := opts.Runtime
	st := rt.Store()
	ext := rt.Config.Export.Extension

	if err := st.Require(opts.Name); err != nil {
		return nil, err
	}

	lk, err := rt.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	toStdout := StdoutTargets[opts.Output]
	target := "-"
	if !toStdout {
		cwd := opts.WorkDir
		if cwd == "" {
			if cwd, err = os.Getwd(); err != nil {
				return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine working directory")
			}
		}
		target = OutputPath(rt.FS, cwd, opts.Name, opts.Output, ext, opts.Force, rt.Clock) + ext
	}

	m, err := rt.ParseManifest(st.ManifestPath(opts.Name))
	if err != nil {
		return nil, err
	}

	stage, err := rt.FS.MkdirTemp("", "konsave")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create staging directory")
	}
	defer func() {
		if err := rt.FS.RemoveAll(stage); err != nil {
			logger.Warn().Err(err).Str("path", stage).Msg("Failed to remove staging directory")
		}
	}()
	logger.Debug().Str("stage", stage).Msg("Building archive")

	result := &types.ExportResult{Name: opts.Name, ArchivePath: target}
	copier := rt.Copier(internal.CountFiles(&result.Stats, opts.OnFile))

	// Saved sections come from the profile, whatever their location
	saveDir := filepath.Join(stage, SaveDir)
	if err := rt.FS.MkdirAll(saveDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", saveDir)
	}
	for _, section := range m.Save {
		copied, err := copier.CopyIfExists(st.SectionPath(opts.Name, section.Name), filepath.Join(saveDir, section.Name))
		if err != nil {
			return nil, err
		}
		if copied {
			result.Stats.Sections++
		}
	}

	exportDir := filepath.Join(stage, ExportDir)
	if err := rt.FS.MkdirAll(exportDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", exportDir)
	}
	for _, section := range internal.Usable(logger, m.Export) {
		dir := filepath.Join(exportDir, section.Name)
		if err := rt.FS.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
		}
		logger.Info().Str("section", section.Name).Msg("Exporting section")
		if err := internal.CopyEntries(logger, copier, section, section.Location, dir, &result.Stats); err != nil {
			return nil, err
		}
	}

	if err := copier.Copy(st.ManifestPath(opts.Name), filepath.Join(stage, paths.ManifestFileName)); err != nil {
		return nil, err
	}

	level := rt.Config.Export.CompressionLevel
	if toStdout {
		if _, err := archive.Pack(rt.FS, stage, rt.Stdout, archive.Options{Level: level}); err != nil {
			return nil, err
		}
	} else if err := writeArchive(rt, stage, target, level); err != nil {
		return nil, err
	}

	logger.Info().Str("profile", opts.Name).Str("archive", target).Msg("Profile exported")
	return result, nil
}

// writeArchive packs stage next to target and renames it into place, so
// a failed export never leaves a truncated archive under the final name.
func writeArchive(rt *core.Runtime, stage, target string, level int) error {
	if err := rt.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
	}

	partial := target + ".part"
	out, err := rt.FS.OpenFile(partial, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", partial)
	}

	_, packErr := archive.Pack(rt.FS, stage, out, archive.Options{Level: level})
	closeErr := out.Close()
	if packErr == nil && closeErr != nil {
		packErr = errors.Wrapf(closeErr, errors.ErrFileWrite, "cannot write %s", partial)
	}
	if packErr != nil {
		_ = rt.FS.Remove(partial)
		return packErr
	}

	if err := rt.FS.Rename(partial, target); err != nil {
		_ = rt.FS.Remove(partial)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot move archive to %s", target)
	}
	return nil
}
