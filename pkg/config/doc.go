// Package config handles konsave's user settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user settings file ($XDG_CONFIG_HOME/konsave/config.toml)
//  3. environment variables KONSAVE_<SECTION>__<KEY>, e.g.
//     KONSAVE_EXPORT__EXTENSION=.zip
//
// The result is decoded into Config with mapstructure. The manifest
// (conf.yaml) is not a setting; it is parsed by package manifest.
package config
