package apply

import (
	"os"
	"os/exec"

	"github.com/arthur-debert/konsave/pkg/commands/internal"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// ApplyProfileOptions holds options for the apply command
type ApplyProfileOptions struct {
	Runtime *core.Runtime
	Name    string
	// Reload runs apply.reload_command after a successful apply
	Reload bool
	// RunCommand executes the reload command; defaults to sh -c
	RunCommand func(command string) error
	// OnFile is called for every file copied
	OnFile func(src, dst string)
}

// ApplyProfile merges a saved profile back into the live system. The
// manifest stored in the profile decides where each section goes, so old
// profiles replay with the layout they were saved with. Live files absent
// from the profile are left in place.
func ApplyProfile(opts ApplyProfileOptions) (*types.ApplyResult, error) {
	logger := logging.GetLogger("commands.apply")
	logger.Info().Str("profile", opts.Name).Bool("reload", opts.Reload).Msg("Applying profile")

	rt := opts.Runtime
	st := rt.Store()

	if err := st.Require(opts.Name); err != nil {
		return nil, err
	}

	lk, err := rt.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	m, err := rt.ParseManifest(st.ManifestPath(opts.Name))
	if err != nil {
		return nil, err
	}

	result := &types.ApplyResult{Name: opts.Name}
	copier := rt.Copier(internal.CountFiles(&result.Stats, opts.OnFile))

	for _, section := range internal.Usable(logger, m.Save) {
		src := st.SectionPath(opts.Name, section.Name)
		logger.Debug().Str("section", section.Name).Str("source", src).Str("dest", section.Location).Msg("Applying section")

		copied, err := copier.CopyIfExists(src, section.Location)
		if err != nil {
			return nil, err
		}
		if !copied {
			logger.Warn().Str("section", section.Name).Msg("Profile has no data for section, skipping")
			result.Stats.Skipped++
			continue
		}
		result.Stats.Sections++
	}

	logger.Info().Str("profile", opts.Name).Int("files", result.Stats.Files).Msg("Profile applied")

	if opts.Reload {
		command := rt.Config.Apply.ReloadCommand
		run := opts.RunCommand
		if run == nil {
			run = runShell
		}
		logger.Info().Str("command", command).Msg("Reloading desktop")
		if err := run(command); err != nil {
			return result, errors.Wrapf(err, errors.ErrInternal, "reload command %q failed", command)
		}
		result.Reloaded = true
	}

	return result, nil
}

func runShell(command string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
