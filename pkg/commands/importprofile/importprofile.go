// Package importprofile implements `konsave import`.
package importprofile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/konsave/pkg/archive"
	"github.com/arthur-debert/konsave/pkg/commands/export"
	"github.com/arthur-debert/konsave/pkg/commands/internal"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/types"
)

// ImportProfileOptions holds options for the import command
type ImportProfileOptions struct {
	Runtime     *core.Runtime
	ArchivePath string
	// Name of the new profile; defaults to the archive name without
	// its extension
	Name string
	// OnFile is called for every file copied
	OnFile func(src, dst string)
}

// ImportProfile creates a profile from an exported archive and writes the
// archive's export sections into their live locations on this machine.
// Live files are overwritten without confirmation.
func ImportProfile(opts ImportProfileOptions) (*types.ImportResult, error) {
	logger := logging.GetLogger("commands.import")
	logger.Info().Str("archive", opts.ArchivePath).Str("name", opts.Name).Msg("Importing profile")
	defer logging.LogOperationStart(logger, "import")()

	rt := opts.Runtime
	st := rt.Store()
	ext := rt.Config.Export.Extension

	if !archive.IsArchive(rt.FS, opts.ArchivePath, ext) {
		return nil, errors.Newf(errors.ErrArchiveInvalid, "%s is not a valid konsave archive", opts.ArchivePath).
			WithDetail("path", opts.ArchivePath)
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(opts.ArchivePath), ext)
	}
	if err := paths.ValidateProfileName(name); err != nil {
		return nil, err
	}
	exists, err := st.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Newf(errors.ErrProfileExists,
			"a profile named %q already exists, use --import-name to import under a different name", name).
			WithDetail("profile", name)
	}

	lk, err := rt.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	stage, err := rt.FS.MkdirTemp("", "konsave")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create staging directory")
	}
	defer func() {
		if err := rt.FS.RemoveAll(stage); err != nil {
			logger.Warn().Err(err).Str("path", stage).Msg("Failed to remove staging directory")
		}
	}()

	if _, err := archive.Unpack(rt.FS, opts.ArchivePath, stage); err != nil {
		return nil, err
	}

	m, err := rt.ParseManifest(filepath.Join(stage, paths.ManifestFileName))
	if err != nil {
		return nil, err
	}

	saveDir := filepath.Join(stage, export.SaveDir)
	if _, err := rt.FS.Stat(saveDir); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrArchiveInvalid, "%s has no saved sections", opts.ArchivePath)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", saveDir)
	}

	if _, err := st.Create(name, false); err != nil {
		return nil, err
	}

	result := &types.ImportResult{Name: name, ProfilePath: st.Path(name)}
	copier := rt.Copier(internal.CountFiles(&result.Stats, opts.OnFile))

	if err := copier.Copy(saveDir, st.Path(name)); err != nil {
		return nil, err
	}
	if err := copier.Copy(filepath.Join(stage, paths.ManifestFileName), st.ManifestPath(name)); err != nil {
		return nil, err
	}

	for _, section := range internal.Usable(logger, m.Export) {
		src := filepath.Join(stage, export.ExportDir, section.Name)
		logger.Info().Str("section", section.Name).Str("dest", section.Location).Msg("Importing section")
		if err := internal.CopyEntries(logger, copier, section, src, section.Location, &result.Stats); err != nil {
			return nil, err
		}
	}

	logger.Info().Str("profile", name).Int("files", result.Stats.Files).Msg("Profile imported")
	return result, nil
}
