package resetconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/defaults"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// ResetConfigOptions holds options for installing the default manifest
type ResetConfigOptions struct {
	Runtime *core.Runtime
	// Force replaces an existing manifest
	Force bool
	// Getenv reads XDG_CURRENT_DESKTOP; defaults to os.Getenv
	Getenv func(string) string
}

// ResetConfig installs the shipped manifest matching the desktop when no
// manifest exists, or always when forced. It runs before every command
// unforced, which is how the first run gets a manifest.
func ResetConfig(opts ResetConfigOptions) (*types.ResetConfigResult, error) {
	logger := logging.GetLogger("commands.resetconfig")

	rt := opts.Runtime
	path := rt.Paths.ManifestPath()
	variant := defaults.DetectVariant(opts.Getenv)
	result := &types.ResetConfigResult{ManifestPath: path, Variant: variant}

	_, err := rt.FS.Stat(path)
	switch {
	case err == nil && !opts.Force:
		return result, nil
	case err != nil && !os.IsNotExist(err):
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", path)
	case err == nil:
		logger.Warn().Str("path", path).Msg("Deleting existing manifest")
	}

	data, err := defaults.Manifest(variant)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded manifest missing")
	}
	if err := rt.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(path))
	}
	if err := rt.FS.WriteFile(path, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}

	logger.Info().Str("path", path).Str("variant", variant).Msg("Installed default manifest")
	result.Installed = true
	return result, nil
}
