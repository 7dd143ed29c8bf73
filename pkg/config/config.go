package config

import (
	"github.com/arthur-debert/konsave/pkg/errors"
)

// Config is the effective konsave settings.
type Config struct {
	Store  Store  `koanf:"store" toml:"store"`
	Export Export `koanf:"export" toml:"export"`
	Copy   Copy   `koanf:"copy" toml:"copy"`
	Apply  Apply  `koanf:"apply" toml:"apply"`
	UI     UI     `koanf:"ui" toml:"ui"`
}

// Store locates the profile store and global manifest.
type Store struct {
	ProfilesDir string `koanf:"profiles_dir" toml:"profiles_dir"`
	Manifest    string `koanf:"manifest" toml:"manifest"`
	Lock        bool   `koanf:"lock" toml:"lock"`
}

// Export controls archive creation.
type Export struct {
	Extension        string `koanf:"extension" toml:"extension"`
	CompressionLevel int    `koanf:"compression_level" toml:"compression_level"`
}

// Copy controls merge-copy.
type Copy struct {
	MaxDepth int `koanf:"max_depth" toml:"max_depth"`
}

// Apply controls profile application.
type Apply struct {
	ReloadCommand string `koanf:"reload_command" toml:"reload_command"`
}

// UI controls terminal output.
type UI struct {
	Progress bool `koanf:"progress" toml:"progress"`
}

// Validate checks values that would otherwise fail deep inside an
// operation.
func (c *Config) Validate() error {
	if c.Export.Extension == "" || c.Export.Extension[0] != '.' {
		return errors.Newf(errors.ErrConfigLoad,
			"export.extension must start with a dot, got %q", c.Export.Extension)
	}
	if c.Export.CompressionLevel < -1 || c.Export.CompressionLevel > 9 {
		return errors.Newf(errors.ErrConfigLoad,
			"export.compression_level must be between -1 and 9, got %d", c.Export.CompressionLevel)
	}
	if c.Copy.MaxDepth < 1 {
		return errors.Newf(errors.ErrConfigLoad,
			"copy.max_depth must be positive, got %d", c.Copy.MaxDepth)
	}
	return nil
}
