package configcheck

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// ConfigCheckOptions holds options for the config-check command
type ConfigCheckOptions struct {
	Runtime *core.Runtime
}

// ConfigCheck compares every save section located directly at the user
// config directory with what that directory actually holds, to show which
// config files a profile would miss.
func ConfigCheck(opts ConfigCheckOptions) (*types.ConfigCheckResult, error) {
	logger := logging.GetLogger("commands.configcheck")

	rt := opts.Runtime
	configDir := filepath.Clean(rt.Paths.ConfigHome())

	m, err := rt.ParseManifest(rt.Paths.ManifestPath())
	if err != nil {
		return nil, err
	}

	listing, err := rt.FS.ReadDir(configDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", configDir)
	}
	present := make(map[string]bool, len(listing))
	for _, e := range listing {
		present[e.Name()] = true
	}

	result := &types.ConfigCheckResult{ConfigDir: configDir, Sections: []types.ConfigCheckSection{}}
	for _, section := range m.Save {
		if section.Unresolved || section.Location != configDir {
			continue
		}

		listed := make(map[string]bool, len(section.Entries))
		for _, e := range section.Entries {
			listed[e] = true
		}

		names := make([]string, 0, len(listed)+len(present))
		for n := range listed {
			names = append(names, n)
		}
		for n := range present {
			if !listed[n] {
				names = append(names, n)
			}
		}
		sort.Strings(names)

		check := types.ConfigCheckSection{Name: section.Name, Entries: make([]types.ConfigCheckEntry, 0, len(names))}
		for _, n := range names {
			check.Entries = append(check.Entries, types.ConfigCheckEntry{
				Name:        n,
				BackedUp:    listed[n],
				InConfigDir: present[n],
			})
		}
		result.Sections = append(result.Sections, check)
	}

	logger.Debug().Int("sections", len(result.Sections)).Msg("Config check done")
	return result, nil
}
