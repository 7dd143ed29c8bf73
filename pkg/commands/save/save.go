package save

import (
	"github.com/arthur-debert/konsave/pkg/commands/internal"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// SaveProfileOptions holds options for the save command
type SaveProfileOptions struct {
	Runtime *core.Runtime
	Name    string
	// Force saves over an existing profile of the same name
	Force bool
	// OnFile is called for every file copied
	OnFile func(src, dst string)
}

// SaveProfile snapshots the entries of every save section of the global
// manifest into a profile, then stores the manifest alongside them.
// Entries missing from the live system are skipped.
func SaveProfile(opts SaveProfileOptions) (*types.SaveResult, error) {
	logger := logging.GetLogger("commands.save")
	logger.Info().
		Str("profile", opts.Name).
		Bool("force", opts.Force).
		Msg("Saving profile")

	rt := opts.Runtime
	st := rt.Store()

	lk, err := rt.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	m, err := rt.ParseManifest(rt.Paths.ManifestPath())
	if err != nil {
		return nil, err
	}

	overwrote, err := st.Create(opts.Name, opts.Force)
	if err != nil {
		return nil, err
	}

	result := &types.SaveResult{
		Name:        opts.Name,
		ProfilePath: st.Path(opts.Name),
		Overwrote:   overwrote,
	}
	copier := rt.Copier(internal.CountFiles(&result.Stats, opts.OnFile))

	for _, section := range internal.Usable(logger, m.Save) {
		logger.Debug().Str("section", section.Name).Str("location", section.Location).Msg("Processing section")

		dir := st.SectionPath(opts.Name, section.Name)
		if err := rt.FS.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
		}
		if err := internal.CopyEntries(logger, copier, section, section.Location, dir, &result.Stats); err != nil {
			return nil, err
		}
	}

	if err := copier.Copy(rt.Paths.ManifestPath(), st.ManifestPath(opts.Name)); err != nil {
		return nil, err
	}

	logger.Info().
		Str("profile", opts.Name).
		Int("sections", result.Stats.Sections).
		Int("entries", result.Stats.Entries).
		Int("skipped", result.Stats.Skipped).
		Msg("Profile saved")
	return result, nil
}
