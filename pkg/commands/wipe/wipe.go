package wipe

import (
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// ConfirmationPhrase must be typed back exactly to wipe the store.
const ConfirmationPhrase = "WIPE"

// Prompt is the question asked before wiping.
const Prompt = `This will wipe all your profiles. Enter "` + ConfirmationPhrase + `" to continue`

// WipeOptions holds options for the wipe command
type WipeOptions struct {
	Runtime *core.Runtime
	// Ask shows the prompt and returns the operator's answer
	Ask func(prompt string) (string, error)
}

// Wipe deletes the whole profile store once the operator types the
// confirmation phrase. Any other answer aborts without error.
func Wipe(opts WipeOptions) (*types.RemoveResult, error) {
	logger := logging.GetLogger("commands.wipe")

	if opts.Ask == nil {
		return nil, errors.New(errors.ErrInternal, "wipe needs a confirmation prompt")
	}

	answer, err := opts.Ask(Prompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrAborted, "confirmation cancelled")
	}
	if answer != ConfirmationPhrase {
		logger.Info().Msg("Wipe aborted")
		return &types.RemoveResult{Removed: []string{}, Aborted: true}, nil
	}

	rt := opts.Runtime
	lk, err := rt.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	removed, err := rt.Store().Wipe()
	if err != nil {
		return nil, err
	}
	logger.Info().Int("count", len(removed)).Msg("Removed all profiles")
	return &types.RemoveResult{Removed: removed}, nil
}
