package remove

import (
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// RemoveProfileOptions holds options for the remove command
type RemoveProfileOptions struct {
	Runtime *core.Runtime
	Name    string
}

// RemoveProfile deletes one saved profile. The live system is untouched.
func RemoveProfile(opts RemoveProfileOptions) (*types.RemoveResult, error) {
	logger := logging.GetLogger("commands.remove")
	logger.Info().Str("profile", opts.Name).Msg("Removing profile")

	rt := opts.Runtime
	lk, err := rt.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	if err := rt.Store().Remove(opts.Name); err != nil {
		return nil, err
	}
	return &types.RemoveResult{Removed: []string{opts.Name}}, nil
}
