package list

import (
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/internal/hashutil"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// ListProfilesOptions defines the options for the ListProfiles command.
type ListProfilesOptions struct {
	Runtime *core.Runtime
	// Digest adds a content digest of every profile
	Digest bool
}

// ListProfiles returns every saved profile. An empty store is reported as
// an error so scripts can tell "nothing saved" apart from a listing.
func ListProfiles(opts ListProfilesOptions) (*types.ListProfilesResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListProfiles").Msg("Executing command")

	rt := opts.Runtime
	profiles, err := rt.Store().List()
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, errors.New(errors.ErrProfileNotFound, "no profile found")
	}

	if opts.Digest {
		for i := range profiles {
			digest, err := hashutil.TreeDigest(rt.FS, profiles[i].Path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot digest profile %s", profiles[i].Name)
			}
			profiles[i].Digest = digest
		}
	}

	log.Info().Str("command", "ListProfiles").Int("profileCount", len(profiles)).Msg("Command finished")
	return &types.ListProfilesResult{Profiles: profiles}, nil
}
