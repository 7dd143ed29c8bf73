// Package paths provides centralized path handling for konsave.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/konsave/pkg/errors"
)

// Environment variable names
const (
	// EnvKonsaveDir overrides the application directory (default $XDG_CONFIG_HOME/konsave)
	EnvKonsaveDir = "KONSAVE_DIR"

	// EnvProfilesDir overrides the profile store location
	EnvProfilesDir = "KONSAVE_PROFILES_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files.
// The profile and archive layouts depend on these names; changing them
// breaks reading profiles saved by older versions.
const (
	// AppDirName is the directory name for konsave-specific files
	AppDirName = "konsave"

	// ProfilesDirName is the subdirectory holding one directory per profile
	ProfilesDirName = "profiles"

	// ManifestFileName is the manifest name, both globally and inside
	// every profile and archive
	ManifestFileName = "conf.yaml"

	// SettingsFileName is the name of the user settings file
	SettingsFileName = "config.toml"

	// LockFileName is the advisory lock used by mutating operations
	LockFileName = ".lock"

	// LogFileName is the name of the log file
	LogFileName = "konsave.log"
)

// Keyword names available as $NAME tokens in manifest locations
const (
	KeywordHome      = "HOME"
	KeywordConfigDir = "CONFIG_DIR"
	KeywordShareDir  = "SHARE_DIR"
	KeywordBinDir    = "BIN_DIR"
)

// Paths provides centralized path management for konsave
type Paths interface {
	HomeDir() string
	ConfigHome() string
	DataHome() string
	BinHome() string
	AppDir() string
	ProfilesDir() string
	ProfilePath(name string) string
	ManifestPath() string
	SettingsPath() string
	LockPath() string
	StateDir() string
	LogFilePath() string
	Keywords() map[string]string
}

// Options overrides individual locations. Empty fields are derived from
// the environment. Tests use it to inject fake roots.
type Options struct {
	Home        string
	ConfigHome  string
	DataHome    string
	BinHome     string
	StateHome   string
	AppDir      string
	ProfilesDir string
	Manifest    string
}

// paths provides centralized path management for konsave
type paths struct {
	home        string
	configHome  string
	dataHome    string
	binHome     string
	stateHome   string
	appDir      string
	profilesDir string
	manifest    string
}

// New creates a new Paths instance. Locations not given in opts come from
// KONSAVE_* overrides, then from the XDG base directories.
func New(opts Options) (Paths, error) {
	// xdg caches the environment at init; pick up changes made since
	xdg.Reload()

	p := &paths{}

	p.home = opts.Home
	if p.home == "" {
		home, err := GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		p.home = home
	}

	p.configHome = firstNonEmpty(opts.ConfigHome, xdg.ConfigHome, filepath.Join(p.home, ".config"))
	p.dataHome = firstNonEmpty(opts.DataHome, xdg.DataHome, filepath.Join(p.home, ".local", "share"))
	p.binHome = firstNonEmpty(opts.BinHome, xdg.BinHome, filepath.Join(p.home, ".local", "bin"))
	p.stateHome = firstNonEmpty(opts.StateHome, xdg.StateHome, filepath.Join(p.home, ".local", "state"))

	p.appDir = firstNonEmpty(expandHome(opts.AppDir), expandHome(os.Getenv(EnvKonsaveDir)),
		filepath.Join(p.configHome, AppDirName))
	p.profilesDir = firstNonEmpty(expandHome(opts.ProfilesDir), expandHome(os.Getenv(EnvProfilesDir)),
		filepath.Join(p.appDir, ProfilesDirName))
	p.manifest = firstNonEmpty(expandHome(opts.Manifest), filepath.Join(p.appDir, ManifestFileName))

	for _, dir := range []*string{&p.appDir, &p.profilesDir, &p.manifest} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// HomeDir returns the user's home directory ($HOME keyword)
func (p *paths) HomeDir() string {
	return p.home
}

// ConfigHome returns the user config directory ($CONFIG_DIR keyword)
func (p *paths) ConfigHome() string {
	return p.configHome
}

// DataHome returns the user data directory ($SHARE_DIR keyword)
func (p *paths) DataHome() string {
	return p.dataHome
}

// BinHome returns the user local bin directory ($BIN_DIR keyword)
func (p *paths) BinHome() string {
	return p.binHome
}

// AppDir returns konsave's own directory
func (p *paths) AppDir() string {
	return p.appDir
}

// ProfilesDir returns the profile store root
func (p *paths) ProfilesDir() string {
	return p.profilesDir
}

// ProfilePath returns the directory of a named profile
func (p *paths) ProfilePath(name string) string {
	return filepath.Join(p.profilesDir, name)
}

// ManifestPath returns the global manifest used by save
func (p *paths) ManifestPath() string {
	return p.manifest
}

// SettingsPath returns the user settings file
func (p *paths) SettingsPath() string {
	return filepath.Join(p.appDir, SettingsFileName)
}

// LockPath returns the advisory lock file. It lives next to the profile
// store, never inside it, so it is not listed as a profile.
func (p *paths) LockPath() string {
	return filepath.Join(p.appDir, LockFileName)
}

// StateDir returns the directory for logs and other state
func (p *paths) StateDir() string {
	return filepath.Join(p.stateHome, AppDirName)
}

// LogFilePath returns the path to the konsave log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.StateDir(), LogFileName)
}

// Keywords returns the values bound to the $NAME manifest tokens.
func (p *paths) Keywords() map[string]string {
	return map[string]string{
		KeywordHome:      p.home,
		KeywordConfigDir: p.configHome,
		KeywordShareDir:  p.dataHome,
		KeywordBinDir:    p.binHome,
	}
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
