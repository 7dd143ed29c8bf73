package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/config"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	Runtime *core.Runtime
	// Write stores a commented settings template at the settings path
	Write bool
}

// GenConfig returns the effective settings as TOML. With Write it also
// creates the user settings file from the commented template, leaving an
// existing file alone.
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	rt := opts.Runtime
	content, err := config.Render(rt.Config)
	if err != nil {
		return nil, err
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	targetPath := rt.Paths.SettingsPath()
	if _, err := rt.FS.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", targetPath)
	}

	if err := rt.FS.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", filepath.Dir(targetPath))
	}
	if err := rt.FS.WriteFile(targetPath, []byte(config.GenerateConfigContent()), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", targetPath)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}
